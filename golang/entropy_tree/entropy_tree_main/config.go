package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

//TestConfig names a labeled dataset the tree is checked against.
type TestConfig struct {
	Description      string `mapstructure:"description"`
	FileNameFeatures string `mapstructure:"filename_features"`
	FileNameLabels   string `mapstructure:"filename_labels"`
}

type TrainConfig struct {
	FileNameTrainFeatures string       `mapstructure:"filename_train_features"`
	FileNameTrainLabels   string       `mapstructure:"filename_train_labels"`
	Tests                 []TestConfig `mapstructure:"tests"`
	FileNameModel         string       `mapstructure:"filename_model"`
	MinSplitSize          int          `mapstructure:"min_split_size"`
	FileNameGraph         string       `mapstructure:"filename_graph"`
	FigureType            string       `mapstructure:"figure_type"`
}

type PredictConfig struct {
	FileNameFeatures string `mapstructure:"filename_features"`
	FileNameModel    string `mapstructure:"filename_model"`
	FileNameLabels   string `mapstructure:"filename_labels"`
	ThreadsNum       int    `mapstructure:"threads_num"`
}

type GraphConfig struct {
	FileNameModel string `mapstructure:"filename_model"`
	FileNameGraph string `mapstructure:"filename_graph"`
	FigureType    string `mapstructure:"figure_type"`
	// PureDot writes DOT text without the graphviz layout engine.
	PureDot bool `mapstructure:"pure_dot"`
}

type EvaluateConfig struct {
	FileNameModel string       `mapstructure:"filename_model"`
	Tests         []TestConfig `mapstructure:"tests"`
}

type ProfileConfig struct {
	FileNameFeatures string `mapstructure:"filename_features"`
	FileNameLabels   string `mapstructure:"filename_labels"`
	FileNameProfile  string `mapstructure:"filename_profile"`
}

//decodeConfig reads a JSON, YAML or TOML file into out; the format follows the extension.
func decodeConfig(srcConfig string, out interface{}) error {
	v := viper.New()
	v.SetConfigFile(srcConfig)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "read config %s", srcConfig)
	}
	return errors.Wrapf(v.Unmarshal(out), "decode config %s", srcConfig)
}
