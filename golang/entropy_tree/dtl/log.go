package dtl

import "github.com/sirupsen/logrus"

var logger logrus.FieldLogger = logrus.StandardLogger()

//SetLogger replaces the logger used by training and I/O helpers.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	logger = l
}
