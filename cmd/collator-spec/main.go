package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-collator-spec/cmd/collator-spec/launcher"
)

func main() {
	if err := launcher.Launch(os.Args); err != nil {
		logrus.WithError(err).Fatal("collator-spec failed")
	}
}
