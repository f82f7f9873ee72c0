package main

import (
	"math"
	"strconv"

	"github.com/iwtcode/tcubeAdapter/models"
)

// atoi разбирает число как C atoi: пробелы в начале, необязательный знак,
// затем цифры до первого постороннего символа. Нет цифр - 0.
func atoi(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || (s[i] >= '\t' && s[i] <= '\r')) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	var n int64
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int64(s[i]-'0')
		if n > math.MaxInt32+1 {
			n = math.MaxInt32 + 1
		}
	}
	if neg {
		n = -n
	}
	return int(max(min(n, math.MaxInt32), math.MinInt32))
}

// parseArgs читает [serial_no] [position] [velocity]; недостающие значения берутся по умолчанию,
// лишние аргументы игнорируются.
func parseArgs(args []string) models.MotionParams {
	p := models.MotionParams{SerialNo: models.DefaultSerialNo}
	if len(args) > 0 {
		p.SerialNo = strconv.Itoa(atoi(args[0]))
	}
	if len(args) > 1 {
		p.Position = atoi(args[1])
	}
	if len(args) > 2 {
		p.Velocity = atoi(args[2])
	}
	return p
}
