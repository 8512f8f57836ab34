// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package node

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/pdf2image/internal/host"
	"github.com/pdiddy/pdf2image/pkg/types"
)

// InvalidParameterError reports a parameter value of the wrong type or
// outside its allowed range.
type InvalidParameterError struct {
	Name   string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Name, e.Value, e.Reason)
}

// UnknownOperationError reports an operation other than "convert".
type UnknownOperationError struct {
	Operation string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation: %s", e.Operation)
}

// request reads the parameters of item i and builds its ConversionRequest.
// The PDF bytes are fetched last, after every parameter has been checked.
func request(ec host.ExecutionContext, i int) (types.ConversionRequest, error) {
	var req types.ConversionRequest

	pdfProp, err := stringParam(ec, ParamPDFBinaryProperty, i, DefaultPDFBinaryProperty)
	if err != nil {
		return req, err
	}

	formatStr, err := stringParam(ec, ParamFormat, i, string(DefaultFormat))
	if err != nil {
		return req, err
	}
	format, err := types.ParseFormat(formatStr)
	if err != nil {
		return req, &InvalidParameterError{Name: ParamFormat, Value: formatStr, Reason: "must be png or jpeg"}
	}

	quality, err := intParam(ec, ParamQuality, i, DefaultQuality)
	if err != nil {
		return req, err
	}
	if format == types.FormatJPEG {
		if err := checkRange(ParamQuality, quality, minQuality, maxQuality); err != nil {
			return req, err
		}
	}

	density, err := intParam(ec, ParamDensity, i, DefaultDensity)
	if err != nil {
		return req, err
	}
	if err := checkRange(ParamDensity, density, minDensity, maxDensity); err != nil {
		return req, err
	}

	width, err := sizeParam(ec, ParamWidth, i)
	if err != nil {
		return req, err
	}
	height, err := sizeParam(ec, ParamHeight, i)
	if err != nil {
		return req, err
	}

	allPages, err := boolParam(ec, ParamConvertAllPages, i, DefaultConvertAllPages)
	if err != nil {
		return req, err
	}

	pageRange := ""
	if !allPages {
		pageRange, err = stringParam(ec, ParamPageRange, i, DefaultPageRange)
		if err != nil {
			return req, err
		}
	}

	outProp, err := stringParam(ec, ParamOutputBinaryProperty, i, DefaultOutputBinaryProperty)
	if err != nil {
		return req, err
	}
	if outProp == "" {
		return req, &InvalidParameterError{Name: ParamOutputBinaryProperty, Value: outProp, Reason: "must not be empty"}
	}

	source, err := ec.BinaryDataBuffer(i, pdfProp)
	if err != nil {
		return req, err
	}

	return types.ConversionRequest{
		SourceBytes:     source,
		Format:          format,
		Quality:         quality,
		DensityDPI:      density,
		Width:           width,
		Height:          height,
		AllPages:        allPages,
		PageRangeSpec:   pageRange,
		OutputFieldName: outProp,
	}, nil
}

func checkRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return &InvalidParameterError{Name: name, Value: v, Reason: fmt.Sprintf("must be between %d and %d", lo, hi)}
	}
	return nil
}

func stringParam(ec host.ExecutionContext, name string, i int, fallback string) (string, error) {
	v, err := ec.NodeParameter(name, i, fallback)
	if err != nil {
		return "", err
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case nil:
		return fallback, nil
	case fmt.Stringer:
		return s.String(), nil
	case int, int64, float64:
		return fmt.Sprint(s), nil
	}
	return "", &InvalidParameterError{Name: name, Value: v, Reason: "must be a string"}
}

func intParam(ec host.ExecutionContext, name string, i int, fallback int) (int, error) {
	v, err := ec.NodeParameter(name, i, fallback)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return fallback, nil
	}
	n, ok := toInt(v)
	if !ok {
		return 0, &InvalidParameterError{Name: name, Value: v, Reason: "must be a whole number"}
	}
	return n, nil
}

// sizeParam reads an optional pixel size. nil, "" and 0 mean unset; any
// other value must be at least minSize.
func sizeParam(ec host.ExecutionContext, name string, i int) (*int, error) {
	v, err := ec.NodeParameter(name, i, nil)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return nil, nil
	}
	n, ok := toInt(v)
	if !ok {
		return nil, &InvalidParameterError{Name: name, Value: v, Reason: "must be a whole number"}
	}
	if n == 0 {
		return nil, nil
	}
	if n < minSize {
		return nil, &InvalidParameterError{Name: name, Value: n, Reason: fmt.Sprintf("must be at least %d", minSize)}
	}
	return &n, nil
}

func boolParam(ec host.ExecutionContext, name string, i int, fallback bool) (bool, error) {
	v, err := ec.NodeParameter(name, i, fallback)
	if err != nil {
		return false, err
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case nil:
		return fallback, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err == nil {
			return parsed, nil
		}
	}
	return false, &InvalidParameterError{Name: name, Value: v, Reason: "must be true or false"}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}
