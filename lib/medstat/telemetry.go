package medstat

import (
	"medstat/lib/telemetry"
)

var tracer = telemetry.Tracer("medstat.lib.medstat")
