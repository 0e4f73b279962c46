package models

// PositionType qualifies what a position points at, using the BAL vocabulary
type PositionType string

// All position types accepted by the BAL format
const (
	PositionEntree            PositionType = "entrée"
	PositionBatiment          PositionType = "bâtiment"
	PositionCageEscalier      PositionType = "cage d’escalier"
	PositionLogement          PositionType = "logement"
	PositionServiceTechnique  PositionType = "service technique"
	PositionDelivrancePostale PositionType = "délivrance postale"
	PositionParcelle          PositionType = "parcelle"
	PositionSegment           PositionType = "segment"
	PositionInconnue          PositionType = "inconnue"
)

// Point is a GeoJSON point. Coordinates are decoded as pointers so that a null
// coordinate submitted by a form survives decoding and can be detected.
type Point struct {
	Type        string     `json:"type" bson:"type"`
	Coordinates []*float64 `json:"coordinates" bson:"coordinates"`
}

// LonLat returns the coordinates when the point is well formed
func (p *Point) LonLat() (float64, float64, bool) {
	if p == nil || p.Type != "Point" || len(p.Coordinates) != 2 {
		return 0, 0, false
	}
	if p.Coordinates[0] == nil || p.Coordinates[1] == nil {
		return 0, 0, false
	}
	return *p.Coordinates[0], *p.Coordinates[1], true
}

// NewPoint builds a well-formed GeoJSON point
func NewPoint(lon, lat float64) *Point {
	return &Point{Type: "Point", Coordinates: []*float64{&lon, &lat}}
}

// Position is a typed point as carried by existing locations and change requests
type Position struct {
	Point Point        `json:"point" bson:"point"`
	Type  PositionType `json:"type" bson:"type"`
}
