package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/tarstars/entropy_tree/golang/entropy_tree/dtl"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "train a tree on npy features and labels and save it",
	RunE: func(cmd *cobra.Command, args []string) error {
		var trainConfig TrainConfig
		if err := decodeConfig(configPath, &trainConfig); err != nil {
			return err
		}

		data, err := dtl.ReadDataset(trainConfig.FileNameTrainFeatures, trainConfig.FileNameTrainLabels)
		if err != nil {
			return err
		}
		tree, err := dtl.TrainContext(cmd.Context(), data, trainConfig.MinSplitSize)
		if err != nil {
			return err
		}
		if err := tree.SaveModel(trainConfig.FileNameModel); err != nil {
			return err
		}
		logrus.WithField("model", trainConfig.FileNameModel).Info("model saved")

		for _, testConfig := range trainConfig.Tests {
			evaluation, err := evaluateTest(tree, testConfig)
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"test": testConfig.Description,
				"rate": evaluation.Rate,
			}).Info("misclassification rate")
		}

		if trainConfig.FileNameGraph != "" {
			return tree.RenderGraph(trainConfig.FileNameGraph, trainConfig.FigureType)
		}
		return nil
	},
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "label every row of an npy feature matrix",
	RunE: func(cmd *cobra.Command, args []string) error {
		var predictConfig PredictConfig
		if err := decodeConfig(configPath, &predictConfig); err != nil {
			return err
		}

		tree, err := dtl.LoadModel(predictConfig.FileNameModel)
		if err != nil {
			return err
		}
		features, err := dtl.ReadNpy(predictConfig.FileNameFeatures)
		if err != nil {
			return err
		}

		var labels []int
		if predictConfig.ThreadsNum > 1 {
			labels, err = dtl.ClassifyAll(cmd.Context(), tree, matrixRows(features), predictConfig.ThreadsNum)
		} else {
			labels, err = tree.ClassifyMatrix(features)
		}
		if err != nil {
			return err
		}

		prediction := mat.NewDense(len(labels), 1, nil)
		for p, label := range labels {
			prediction.Set(p, 0, float64(label))
		}
		return dtl.WriteNpy(predictConfig.FileNameLabels, prediction)
	},
}

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "render a saved tree as a picture or DOT text",
	RunE: func(cmd *cobra.Command, args []string) error {
		var graphConfig GraphConfig
		if err := decodeConfig(configPath, &graphConfig); err != nil {
			return err
		}

		tree, err := dtl.LoadModel(graphConfig.FileNameModel)
		if err != nil {
			return err
		}
		if !graphConfig.PureDot {
			return tree.RenderGraph(graphConfig.FileNameGraph, graphConfig.FigureType)
		}

		dst, err := os.Create(graphConfig.FileNameGraph)
		if err != nil {
			return errors.Wrapf(err, "create %s", graphConfig.FileNameGraph)
		}
		if err := tree.WriteDot(dst); err != nil {
			dst.Close()
			return err
		}
		return dst.Close()
	},
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "print error rates and confusion matrices of a saved tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		var evaluateConfig EvaluateConfig
		if err := decodeConfig(configPath, &evaluateConfig); err != nil {
			return err
		}

		tree, err := dtl.LoadModel(evaluateConfig.FileNameModel)
		if err != nil {
			return err
		}

		descriptions := make([]string, 0, len(evaluateConfig.Tests))
		evaluations := make([]dtl.Evaluation, 0, len(evaluateConfig.Tests))
		for _, testConfig := range evaluateConfig.Tests {
			evaluation, err := evaluateTest(tree, testConfig)
			if err != nil {
				return err
			}
			descriptions = append(descriptions, testConfig.Description)
			evaluations = append(evaluations, evaluation)
		}
		renderEvaluations(cmd.OutOrStdout(), descriptions, evaluations)
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "store the weighted entropy of every candidate root split as npy",
	RunE: func(cmd *cobra.Command, args []string) error {
		var profileConfig ProfileConfig
		if err := decodeConfig(configPath, &profileConfig); err != nil {
			return err
		}

		data, err := dtl.ReadDataset(profileConfig.FileNameFeatures, profileConfig.FileNameLabels)
		if err != nil {
			return err
		}
		profile, err := dtl.SplitProfile(data)
		if err != nil {
			return err
		}

		return dtl.WriteNpy(profileConfig.FileNameProfile, dtl.ProfileMatrix(profile))
	},
}

func evaluateTest(tree *dtl.Tree, testConfig TestConfig) (dtl.Evaluation, error) {
	data, err := dtl.ReadDataset(testConfig.FileNameFeatures, testConfig.FileNameLabels)
	if err != nil {
		return dtl.Evaluation{}, err
	}
	evaluation, err := dtl.Evaluate(tree, data)
	return evaluation, errors.Wrapf(err, "evaluate %s", testConfig.Description)
}

func matrixRows(m mat.Matrix) [][]float64 {
	h, w := m.Dims()
	rows := make([][]float64, h)
	for p := range rows {
		rows[p] = make([]float64, w)
		for q := 0; q < w; q++ {
			rows[p][q] = m.At(p, q)
		}
	}
	return rows
}

//renderEvaluations prints a summary table and one confusion matrix per test.
func renderEvaluations(w io.Writer, descriptions []string, evaluations []dtl.Evaluation) {
	summary := table.NewWriter()
	summary.SetOutputMirror(w)
	summary.SetStyle(table.StyleLight)
	summary.AppendHeader(table.Row{"test", "total", "misclassified", "rate", "precision", "recall"})
	for ind, evaluation := range evaluations {
		summary.AppendRow(table.Row{
			descriptions[ind],
			evaluation.Total,
			evaluation.Misclassified,
			fmt.Sprintf("%.3f", evaluation.Rate),
			fmt.Sprintf("%.3f", evaluation.Precision()),
			fmt.Sprintf("%.3f", evaluation.Recall()),
		})
	}
	summary.Render()

	for ind, evaluation := range evaluations {
		confusion := table.NewWriter()
		confusion.SetOutputMirror(w)
		confusion.SetStyle(table.StyleLight)
		confusion.SetTitle("%s", descriptions[ind])
		confusion.AppendHeader(table.Row{"actual \\ predicted", 0, 1})
		for label := 0; label < 2; label++ {
			confusion.AppendRow(table.Row{label, evaluation.Confusion.At(label, 0), evaluation.Confusion.At(label, 1)})
		}
		confusion.Render()
	}
}
