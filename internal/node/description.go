// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package node

import "github.com/pdiddy/pdf2image/pkg/types"

// Parameter names and defaults.
const (
	ParamOperation            = "operation"
	ParamPDFBinaryProperty    = "pdfBinaryProperty"
	ParamFormat               = "format"
	ParamQuality              = "quality"
	ParamDensity              = "density"
	ParamWidth                = "width"
	ParamHeight               = "height"
	ParamConvertAllPages      = "convertAllPages"
	ParamPageRange            = "pageRange"
	ParamOutputBinaryProperty = "outputBinaryProperty"

	OperationConvert = "convert"

	DefaultPDFBinaryProperty    = "data"
	DefaultFormat               = types.FormatPNG
	DefaultQuality              = 85
	DefaultDensity              = 150
	DefaultConvertAllPages      = true
	DefaultPageRange            = "1-5"
	DefaultOutputBinaryProperty = "image"

	minQuality = 1
	maxQuality = 100
	minDensity = 72
	maxDensity = 600
	minSize    = 100
)

// DefaultConfig returns the parameter defaults as a ConversionConfig.
func DefaultConfig() types.ConversionConfig {
	return types.ConversionConfig{
		PDFBinaryProperty:    DefaultPDFBinaryProperty,
		Format:               string(DefaultFormat),
		Quality:              DefaultQuality,
		Density:              DefaultDensity,
		ConvertAllPages:      DefaultConvertAllPages,
		PageRange:            DefaultPageRange,
		OutputBinaryProperty: DefaultOutputBinaryProperty,
	}
}

func bound(n int) *int { return &n }

var showConvert = map[string][]any{ParamOperation: {OperationConvert}}

// Description returns the descriptor the node registers with its host.
func Description() types.NodeDescription {
	return types.NodeDescription{
		DisplayName: "PDF to Image",
		Name:        "pdf2Image",
		Group:       []string{"transform"},
		Version:     1,
		Description: "Convert PDF files to images",
		Inputs:      []string{"main"},
		Outputs:     []string{"main"},
		Properties: []types.NodeProperty{
			{
				DisplayName: "Operation",
				Name:        ParamOperation,
				Type:        types.PropertyOptions,
				Options:     []types.PropertyOption{{Name: "Convert PDF to Images", Value: OperationConvert}},
				Default:     OperationConvert,
			},
			{
				DisplayName: "PDF Binary Property",
				Name:        ParamPDFBinaryProperty,
				Type:        types.PropertyString,
				Default:     DefaultPDFBinaryProperty,
				Required:    true,
				Placeholder: "e.g., data",
				Description: "Name of the binary property that contains the PDF file",
				ShowWhen:    showConvert,
			},
			{
				DisplayName: "Output Format",
				Name:        ParamFormat,
				Type:        types.PropertyOptions,
				Options: []types.PropertyOption{
					{Name: "PNG", Value: string(types.FormatPNG)},
					{Name: "JPEG", Value: string(types.FormatJPEG)},
				},
				Default:     string(DefaultFormat),
				Description: "Output image format",
				ShowWhen:    showConvert,
			},
			{
				DisplayName: "Quality",
				Name:        ParamQuality,
				Type:        types.PropertyNumber,
				Default:     DefaultQuality,
				MinValue:    bound(minQuality),
				MaxValue:    bound(maxQuality),
				Description: "JPEG quality (1-100)",
				ShowWhen:    map[string][]any{ParamOperation: {OperationConvert}, ParamFormat: {string(types.FormatJPEG)}},
			},
			{
				DisplayName: "DPI",
				Name:        ParamDensity,
				Type:        types.PropertyNumber,
				Default:     DefaultDensity,
				MinValue:    bound(minDensity),
				MaxValue:    bound(maxDensity),
				Description: "Output image DPI (dots per inch)",
				ShowWhen:    showConvert,
			},
			{
				DisplayName: "Width",
				Name:        ParamWidth,
				Type:        types.PropertyNumber,
				Default:     "",
				MinValue:    bound(minSize),
				Placeholder: "Leave empty for auto",
				Description: "Output image width in pixels. Leave empty for automatic sizing.",
				ShowWhen:    showConvert,
			},
			{
				DisplayName: "Height",
				Name:        ParamHeight,
				Type:        types.PropertyNumber,
				Default:     "",
				MinValue:    bound(minSize),
				Placeholder: "Leave empty for auto",
				Description: "Output image height in pixels. Leave empty for automatic sizing.",
				ShowWhen:    showConvert,
			},
			{
				DisplayName: "Convert All Pages",
				Name:        ParamConvertAllPages,
				Type:        types.PropertyBoolean,
				Default:     DefaultConvertAllPages,
				Description: "Whether to convert all pages or specify a range",
				ShowWhen:    showConvert,
			},
			{
				DisplayName: "Page Range",
				Name:        ParamPageRange,
				Type:        types.PropertyString,
				Default:     DefaultPageRange,
				Placeholder: "e.g., 1-5 or 1,3,5",
				Description: `Page range to convert (e.g., "1-5" for pages 1 to 5, or "1,3,5" for specific pages)`,
				ShowWhen:    map[string][]any{ParamOperation: {OperationConvert}, ParamConvertAllPages: {false}},
			},
			{
				DisplayName: "Output Binary Property Name",
				Name:        ParamOutputBinaryProperty,
				Type:        types.PropertyString,
				Default:     DefaultOutputBinaryProperty,
				Description: "Name of the binary property to store the converted images",
				ShowWhen:    showConvert,
			},
		},
	}
}
