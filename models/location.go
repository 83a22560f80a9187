package models

// Country is one entry of GET /api/countries.
type Country struct {
	Name   string   `json:"name" bson:"name"`
	States []string `json:"states" bson:"states"`
}
