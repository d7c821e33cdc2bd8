package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseCoeffs 解析以逗号、分号或空白分隔的系数列表（升幂）
func ParseCoeffs(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, errors.New("no coefficients")
	}
	coeffs := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("coefficient %d: %w", i, err)
		}
		coeffs[i] = v
	}
	return coeffs, nil
}
