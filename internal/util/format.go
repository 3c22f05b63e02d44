package util

import "fmt"

// FormatHeures 课时数文本，去掉无意义的小数位
// 25 → "25H"，2.5 → "2.5H"
func FormatHeures(value float64) string {
	if value == float64(int64(value)) {
		return fmt.Sprintf("%dH", int64(value))
	}
	return fmt.Sprintf("%.1fH", value)
}
