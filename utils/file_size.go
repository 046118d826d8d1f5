package utils

import (
	"math"
	"strconv"
)

var fileSizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count with 1024-based units, e.g. "1.5 KB".
// Values are rounded to two decimals without trailing zeros.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	const k = 1024
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(k)))
	if i >= len(fileSizeUnits) {
		i = len(fileSizeUnits) - 1
	}

	value := float64(bytes) / math.Pow(k, float64(i))
	value = math.Round(value*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + fileSizeUnits[i]
}
