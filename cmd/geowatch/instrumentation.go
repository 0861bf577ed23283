package main

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const scopeName = "github.com/koscakluka/whereabouts/cmd/geowatch"

var logger = otelslog.NewLogger(scopeName)
