package models

// Listing is one row of the helping societies directory. JSON keys keep the
// column names verbatim.
type Listing struct {
	SocietyName      string `db:"society_name" json:"SOCIETY_NAME" yaml:"society_name"`
	OrganisationNeed string `db:"organisation_need" json:"ORGANISATION_NEED" yaml:"organisation_need"`
	Service          string `db:"service" json:"SERVICE" yaml:"service"`
	State            string `db:"state" json:"STATE" yaml:"state"`
	District         string `db:"district" json:"DISTRICT" yaml:"district"`
	Pincode          string `db:"pincode" json:"PINCODE" yaml:"pincode"`
}

// Fields returns the six searchable values in column order.
func (l Listing) Fields() []string {
	return []string{l.SocietyName, l.OrganisationNeed, l.Service, l.State, l.District, l.Pincode}
}
