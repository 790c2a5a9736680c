package routes_test

import (
	"strconv"
)

func jsonID(f float64) string { return strconv.FormatUint(uint64(f), 10) }

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		panic(err)
	}
	return n
}
