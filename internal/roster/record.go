package roster

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

type Status string

const (
	StatusCreator  Status = "Creator"
	StatusProspect Status = "Prospect"
	StatusArchived Status = "Archived"
)

// Column names used in CSV headers and named-field lookup.
const (
	FieldName                     = "Name"
	FieldStatus                   = "Status"
	FieldEmail                    = "Email"
	FieldLocation                 = "Location"
	FieldPlatform                 = "Platform"
	FieldChannelURL               = "Channel URL"
	FieldMonthlyViews             = "Monthly Views"
	FieldVerticals                = "Verticals"
	FieldAudienceDemographics     = "Audience Demographics"
	FieldPreferredBrands          = "Preferred Brands"
	FieldAvoidedBrands            = "Avoided Brands"
	FieldPreferredBrandCategories = "Preferred Brand Categories"
	FieldAvoidedBrandCategories   = "Avoided Brand Categories"
	FieldNotes                    = "Notes"
)

var (
	ErrInvalidStatus = errors.New("invalid status")
	ErrNegativeViews = errors.New("monthly views must not be negative")
)

// Columns lists every record field in table order.
var Columns = []string{
	FieldName,
	FieldStatus,
	FieldEmail,
	FieldLocation,
	FieldPlatform,
	FieldChannelURL,
	FieldMonthlyViews,
	FieldVerticals,
	FieldAudienceDemographics,
	FieldPreferredBrands,
	FieldAvoidedBrands,
	FieldPreferredBrandCategories,
	FieldAvoidedBrandCategories,
	FieldNotes,
}

// TagFields are the fields stored in canonical tag form.
var TagFields = []string{
	FieldVerticals,
	FieldPreferredBrandCategories,
	FieldAvoidedBrandCategories,
}

// Statuses lists the valid statuses in the order they are offered to users.
var Statuses = []Status{StatusCreator, StatusProspect, StatusArchived}

type Record struct {
	Name                     string `roster:"Name" json:"name"`
	Status                   Status `roster:"Status" json:"status"`
	Email                    string `roster:"Email" json:"email,omitempty"`
	Location                 string `roster:"Location" json:"location,omitempty"`
	Platform                 string `roster:"Platform" json:"platform,omitempty"`
	ChannelURL               string `roster:"Channel URL" json:"channel_url,omitempty"`
	MonthlyViews             int64  `roster:"Monthly Views" json:"monthly_views"`
	Verticals                string `roster:"Verticals" json:"verticals,omitempty"`
	AudienceDemographics     string `roster:"Audience Demographics" json:"audience_demographics,omitempty"`
	PreferredBrands          string `roster:"Preferred Brands" json:"preferred_brands,omitempty"`
	AvoidedBrands            string `roster:"Avoided Brands" json:"avoided_brands,omitempty"`
	PreferredBrandCategories string `roster:"Preferred Brand Categories" json:"preferred_brand_categories,omitempty"`
	AvoidedBrandCategories   string `roster:"Avoided Brand Categories" json:"avoided_brand_categories,omitempty"`
	Notes                    string `roster:"Notes" json:"notes,omitempty"`
}

// ParseStatus resolves a status name case-insensitively. Empty input yields StatusCreator.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return StatusCreator, nil
	}
	for _, status := range Statuses {
		if strings.EqualFold(s, string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// FromMap builds a record out of a loosely typed row keyed by column name.
// Missing keys keep their zero value and unknown keys are ignored.
func FromMap(row map[string]any) (Record, error) {
	var rec Record

	cfg := &mapstructure.DecoderConfig{
		Result:           &rec,
		TagName:          "roster",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return Record{}, err
	}
	if err := decoder.Decode(trimKeyColumns(row)); err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}

	status, err := ParseStatus(string(rec.Status))
	if err != nil {
		return Record{}, err
	}
	rec.Status = status

	if rec.MonthlyViews < 0 {
		return Record{}, fmt.Errorf("%w: %d", ErrNegativeViews, rec.MonthlyViews)
	}

	return rec, nil
}

// trimmedColumns hold identifiers, numbers and tags. Free-text columns keep
// their whitespace.
var trimmedColumns = map[string]struct{}{
	FieldName:                     {},
	FieldStatus:                   {},
	FieldMonthlyViews:             {},
	FieldVerticals:                {},
	FieldPreferredBrandCategories: {},
	FieldAvoidedBrandCategories:   {},
}

func trimKeyColumns(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for column, value := range row {
		if s, ok := value.(string); ok {
			if _, trim := trimmedColumns[column]; trim {
				value = strings.TrimSpace(s)
			}
		}
		out[column] = value
	}
	return out
}

// Field looks a value up by column name. The second result is false for unknown names.
func (r *Record) Field(name string) (string, bool) {
	switch name {
	case FieldName:
		return r.Name, true
	case FieldStatus:
		return string(r.Status), true
	case FieldEmail:
		return r.Email, true
	case FieldLocation:
		return r.Location, true
	case FieldPlatform:
		return r.Platform, true
	case FieldChannelURL:
		return r.ChannelURL, true
	case FieldMonthlyViews:
		return strconv.FormatInt(r.MonthlyViews, 10), true
	case FieldVerticals:
		return r.Verticals, true
	case FieldAudienceDemographics:
		return r.AudienceDemographics, true
	case FieldPreferredBrands:
		return r.PreferredBrands, true
	case FieldAvoidedBrands:
		return r.AvoidedBrands, true
	case FieldPreferredBrandCategories:
		return r.PreferredBrandCategories, true
	case FieldAvoidedBrandCategories:
		return r.AvoidedBrandCategories, true
	case FieldNotes:
		return r.Notes, true
	default:
		return "", false
	}
}

// SetTagField replaces the value of a tag field. It reports false for non-tag fields.
func (r *Record) SetTagField(name, value string) bool {
	switch name {
	case FieldVerticals:
		r.Verticals = value
	case FieldPreferredBrandCategories:
		r.PreferredBrandCategories = value
	case FieldAvoidedBrandCategories:
		r.AvoidedBrandCategories = value
	default:
		return false
	}
	return true
}

// Values returns the record as strings in Columns order.
func (r *Record) Values() []string {
	values := make([]string, 0, len(Columns))
	for _, column := range Columns {
		v, _ := r.Field(column)
		values = append(values, v)
	}
	return values
}
