package serpapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OperatingStatus is the open/closed state reported for a place
type OperatingStatus string

const (
	StatusOpen              OperatingStatus = "OPEN"
	StatusTemporarilyClosed OperatingStatus = "TEMPORARILY_CLOSED"
	StatusPermanentlyClosed OperatingStatus = "PERMANENTLY_CLOSED"
	StatusUnknown           OperatingStatus = "UNKNOWN"
)

// ProspectionStatus maps the operating status to the Salesforce picklist
// value, or empty when the place is open or the status is unknown.
func (s OperatingStatus) ProspectionStatus() string {
	switch s {
	case StatusPermanentlyClosed:
		return "Permanently Closed"
	case StatusTemporarilyClosed:
		return "Temporarily Closed"
	default:
		return ""
	}
}

// Place is the typed search candidate parsed once at the API boundary
type Place struct {
	Title           string
	Address         string
	PlaceID         string
	DataID          string
	Rating          float64
	Reviews         int
	Price           string
	Types           []string
	Thumbnail       string
	Website         string
	AcceptsBookings bool
	HasDelivery     bool
	HasTakeout      bool
	Status          OperatingStatus
}

// searchResponse is the top-level SERP API payload. A generic query returns
// a list under local_results; a very specific one may return a single place
// under place_results instead.
type searchResponse struct {
	Error        string           `json:"error"`
	LocalResults []rawPlace       `json:"local_results"`
	PlaceResults *rawPlace        `json:"place_results"`
	SearchInfo   *json.RawMessage `json:"search_information"`
}

// rawPlace mirrors the loosely-typed SERP API result shape
type rawPlace struct {
	Title           string           `json:"title"`
	Address         string           `json:"address"`
	PlaceID         string           `json:"place_id"`
	DataID          string           `json:"data_id"`
	Rating          float64          `json:"rating"`
	Reviews         int              `json:"reviews"`
	Price           string           `json:"price"`
	Type            typeList         `json:"type"`
	Thumbnail       string           `json:"thumbnail"`
	Website         string           `json:"website"`
	OperatingStatus string           `json:"operating_status"`
	ReserveATable   *json.RawMessage `json:"reserve_a_table"`
	Extensions      []interface{}    `json:"extensions"`
	ServiceOptions  serviceOptions   `json:"service_options"`
}

// typeList accepts either a single string or a list of category strings
type typeList []string

func (t *typeList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*t = nil
		} else {
			*t = typeList{single}
		}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("type must be a string or a list of strings: %w", err)
	}
	*t = typeList(many)
	return nil
}

// serviceOptions accepts either the object form {"delivery": true} or the
// list form ["Dine-in", "Takeout", "Delivery"]
type serviceOptions struct {
	Delivery bool
	Takeout  bool
}

func (s *serviceOptions) UnmarshalJSON(data []byte) error {
	var asMap map[string]bool
	if err := json.Unmarshal(data, &asMap); err == nil {
		s.Delivery = asMap["delivery"]
		s.Takeout = asMap["takeout"]
		return nil
	}

	var asList []string
	if err := json.Unmarshal(data, &asList); err != nil {
		return fmt.Errorf("service_options must be an object or a list: %w", err)
	}
	for _, opt := range asList {
		switch strings.ToLower(opt) {
		case "delivery":
			s.Delivery = true
		case "takeout", "pickup":
			s.Takeout = true
		}
	}
	return nil
}

// toPlace converts the raw API shape into the typed candidate
func (r *rawPlace) toPlace() *Place {
	p := &Place{
		Title:       r.Title,
		Address:     r.Address,
		PlaceID:     r.PlaceID,
		DataID:      r.DataID,
		Rating:      r.Rating,
		Reviews:     r.Reviews,
		Price:       r.Price,
		Types:       []string(r.Type),
		Thumbnail:   r.Thumbnail,
		Website:     r.Website,
		HasDelivery: r.ServiceOptions.Delivery,
		HasTakeout:  r.ServiceOptions.Takeout,
		Status:      StatusOpen,
	}

	switch r.OperatingStatus {
	case "PERMANENTLY_CLOSED":
		p.Status = StatusPermanentlyClosed
	case "TEMPORARILY_CLOSED":
		p.Status = StatusTemporarilyClosed
	case "", "OPEN", "OPERATIONAL":
		p.Status = StatusOpen
	default:
		p.Status = StatusUnknown
	}

	// A reserve_a_table block or a booking-flavoured extension means the
	// place takes reservations
	if r.ReserveATable != nil && string(*r.ReserveATable) != "null" {
		p.AcceptsBookings = true
	}
	for _, ext := range r.Extensions {
		text := strings.ToLower(fmt.Sprint(ext))
		if strings.Contains(text, "booking") || strings.Contains(text, "reserve") {
			p.AcceptsBookings = true
			break
		}
	}

	return p
}
