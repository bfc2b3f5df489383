// Command gpeg-json is a tiny CLI front-end over gpeg/examples/json: it
// reads a JSON document (from a file argument, or stdin if none is given)
// and reports whether it parses, and where, the way the teacher's own
// example mains do (see other_examples' pigeon json/calculator demos). Not
// part of the core library (spec §6: "no CLI surface in the core") - the
// one place this module uses logrus, since the core itself never logs
// (§7).
package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/parsekit/gpeg/examples/json"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	var src []byte
	var err error
	if len(os.Args) > 1 {
		src, err = os.ReadFile(os.Args[1])
	} else {
		src, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		logrus.WithError(err).Fatal("gpeg-json: could not read input")
	}

	value, err := json.Parse(string(src))
	if err != nil {
		logrus.WithError(err).Error("gpeg-json: parse failed")
		os.Exit(1)
	}

	logrus.WithField("value", value.String()).Info("gpeg-json: parsed successfully")
}
