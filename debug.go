package qrcode

import (
	"fmt"
	"os"
)

var _debug = os.Getenv("QRCODE_DEBUG") != ""

func debugLogf(format string, v ...interface{}) {
	if !_debug {
		return
	}
	fmt.Fprintf(os.Stderr, "[qrcode] "+format+"\n", v...)
}
