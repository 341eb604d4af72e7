package flow

// Stroke colors assigned by DeriveInitialStyle.
const (
	ColorGreen = "#22c55e"
	ColorRed   = "#ef4444"
	ColorBlack = "#000000"
)

// DefaultCanvasColor is the canvas background used when none is configured.
const DefaultCanvasColor = "#ffffff"

// LineStyle is the stroke pattern of an edge.
type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
	LineDotted LineStyle = "dotted"
)

// TipStyle is the arrowhead at an edge's target end.
type TipStyle string

const (
	TipArrowOpen   TipStyle = "arrowOpen"
	TipArrowClosed TipStyle = "arrowClosed"
	TipNone        TipStyle = "none"
)

// LabelBackground is either one of the two named modes or an explicit color.
type LabelBackground string

const (
	BackgroundTransparent LabelBackground = "transparent"
	BackgroundCanvas      LabelBackground = "canvasMatched"
)

// Dash patterns, as SVG stroke-dasharray values.
const (
	dashLong  = "8 4"
	dashShort = "2 3"
)

// Label box constants shared by every edge.
const (
	labelBorderDash = "4 2"
	labelPaddingX   = 6
	labelPaddingY   = 2
	labelRadius     = 4
)

var lineDashes = map[LineStyle]string{
	LineSolid:  "",
	LineDashed: dashLong,
	LineDotted: dashShort,
}

// Marker types understood by the canvas.
const (
	markerOpen   = "arrow"
	markerClosed = "arrowclosed"
)

var tipMarkers = map[TipStyle]string{
	TipArrowOpen:   markerOpen,
	TipArrowClosed: markerClosed,
}

// InitialStyle is what a fresh edge inherits from its source port.
type InitialStyle struct {
	StrokeColor string
	Label       string
}

// DeriveInitialStyle returns the color and label a new edge gets from the port
// it leaves.
func DeriveInitialStyle(sourcePort string) InitialStyle {
	switch sourcePort {
	case PortTrue:
		return InitialStyle{StrokeColor: ColorGreen, Label: "Yes"}
	case PortFalse:
		return InitialStyle{StrokeColor: ColorRed, Label: "No"}
	case PortSuccess:
		return InitialStyle{StrokeColor: ColorGreen, Label: "Success"}
	case PortFailure:
		return InitialStyle{StrokeColor: ColorRed, Label: "Failure"}
	default:
		return InitialStyle{StrokeColor: ColorBlack}
	}
}

// LabelStyle is the derived appearance of an edge label box.
type LabelStyle struct {
	BorderColor  string     `json:"borderColor"`
	TextColor    string     `json:"textColor"`
	Fill         string     `json:"fill"`
	FillOpacity  float64    `json:"fillOpacity"`
	BorderDash   string     `json:"borderDash"`
	Padding      [2]float64 `json:"padding"`
	BorderRadius float64    `json:"borderRadius"`
}

// ComputeLabelPresentation is the only place label appearance is decided.
// Border and text always follow the stroke color.
func ComputeLabelPresentation(strokeColor string, bg LabelBackground, canvasColor string) LabelStyle {
	ls := LabelStyle{
		BorderColor:  strokeColor,
		TextColor:    strokeColor,
		FillOpacity:  1,
		BorderDash:   labelBorderDash,
		Padding:      [2]float64{labelPaddingX, labelPaddingY},
		BorderRadius: labelRadius,
	}
	switch bg {
	case BackgroundTransparent:
		ls.Fill = string(BackgroundTransparent)
		ls.FillOpacity = 0
	case BackgroundCanvas, "":
		ls.Fill = canvasColor
		if ls.Fill == "" {
			ls.Fill = DefaultCanvasColor
		}
	default:
		ls.Fill = string(bg)
	}
	return ls
}

// ResolveLineDash returns the dash pattern for a line style; solid lines have
// none.
func ResolveLineDash(style LineStyle) string {
	return lineDashes[style]
}

// LineStyleFromDash inverts ResolveLineDash.
func LineStyleFromDash(dash string) (LineStyle, bool) {
	for style, d := range lineDashes {
		if d == dash {
			return style, true
		}
	}
	return LineSolid, false
}

// Arrowhead is the marker drawn at an edge's target.
type Arrowhead struct {
	Type   string  `json:"type"`
	Color  string  `json:"color"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ResolveArrowhead returns the marker for a tip style, colored like the stroke.
// TipNone yields nil.
func ResolveArrowhead(tip TipStyle, strokeColor string) *Arrowhead {
	marker, ok := tipMarkers[tip]
	if !ok {
		return nil
	}
	return &Arrowhead{Type: marker, Color: strokeColor, Width: 20, Height: 20}
}

// TipStyleFromArrowhead inverts ResolveArrowhead.
func TipStyleFromArrowhead(a *Arrowhead) TipStyle {
	if a == nil {
		return TipNone
	}
	for tip, marker := range tipMarkers {
		if marker == a.Type {
			return tip
		}
	}
	return TipNone
}

// Presentation is the full visual encoding of an edge.
type Presentation struct {
	Stroke     string     `json:"stroke"`
	Dash       string     `json:"dash,omitempty"`
	Arrowhead  *Arrowhead `json:"arrowhead,omitempty"`
	Label      string     `json:"label,omitempty"`
	LabelStyle LabelStyle `json:"labelStyle"`
}

// Presentation derives the edge's visual encoding from its semantic fields.
func (e Edge) Presentation(canvasColor string) Presentation {
	return Presentation{
		Stroke:     e.StrokeColor,
		Dash:       ResolveLineDash(e.LineStyle),
		Arrowhead:  ResolveArrowhead(e.TipStyle, e.StrokeColor),
		Label:      e.Label,
		LabelStyle: ComputeLabelPresentation(e.StrokeColor, e.LabelBackground, canvasColor),
	}
}

func validLineStyle(s LineStyle) bool {
	_, ok := lineDashes[s]
	return ok
}

func validTipStyle(t TipStyle) bool {
	_, ok := tipMarkers[t]
	return ok || t == TipNone
}
