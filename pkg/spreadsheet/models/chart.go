package models

// ChartSeries represents series metadata for a chart.
type ChartSeries struct {
	// Name is the series display name.
	Name string `json:"name"`
	// NameRange is the range reference for the series name.
	NameRange string `json:"name_range,omitempty"`
	// XRange is the range reference for X axis (category) values.
	XRange string `json:"x_range,omitempty"`
	// YRange is the range reference for Y axis values.
	YRange string `json:"y_range,omitempty"`
}

// Chart represents chart metadata including series and anchor.
type Chart struct {
	// Name is the chart frame name.
	Name string `json:"name"`
	// ChartType is the chart type (e.g., Bar, Line).
	ChartType string `json:"chart_type"`
	// Title is the chart title.
	Title string `json:"title,omitempty"`
	// Part is the chart part path inside the package.
	Part string `json:"part,omitempty"`
	// Series is the list of series included in the chart.
	Series []ChartSeries `json:"series"`
	// References lists every data reference formula of the chart.
	References []string `json:"references,omitempty"`
	// From is the top-left anchor position.
	From Marker `json:"from"`
	// To is the bottom-right anchor position.
	To Marker `json:"to"`
}
