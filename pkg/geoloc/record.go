package geoloc

// Record is the typed view of a lookup result, one field per catalog
// entry. Fields the provider did not return (filtered lookups) are
// left at their zero values.
//
// Attribute-style access to arbitrary provider fields is not possible
// in a statically typed language; Record covers the known catalog and
// Response.Value covers everything else.
type Record struct {
	Domain         string `json:"domain,omitempty"`
	IP             string `json:"ip,omitempty"`
	Hostname       string `json:"hostname,omitempty"`
	ContinentCode  string `json:"continent_code,omitempty"`
	ContinentName  string `json:"continent_name,omitempty"`
	CountryCode2   string `json:"country_code2,omitempty"`
	CountryCode3   string `json:"country_code3,omitempty"`
	CountryName    string `json:"country_name,omitempty"`
	CountryCapital string `json:"country_capital,omitempty"`
	StateProv      string `json:"state_prov,omitempty"`
	District       string `json:"district,omitempty"`
	City           string `json:"city,omitempty"`
	Zipcode        string `json:"zipcode,omitempty"`
	Latitude       string `json:"latitude,omitempty"`
	Longitude      string `json:"longitude,omitempty"`
	IsEU           bool   `json:"is_eu,omitempty"`
	CallingCode    string `json:"calling_code,omitempty"`
	CountryTLD     string `json:"country_tld,omitempty"`
	Languages      string `json:"languages,omitempty"`
	CountryFlag    string `json:"country_flag,omitempty"`
	GeonameID      string `json:"geoname_id,omitempty"`
	ISP            string `json:"isp,omitempty"`
	ConnectionType string `json:"connection_type,omitempty"`
	Organization   string `json:"organization,omitempty"`
	ASN            string `json:"asn,omitempty"`

	Currency *Currency `json:"currency,omitempty"`
	TimeZone *TimeZone `json:"time_zone,omitempty"`
}

// Currency describes the local currency of the looked-up location.
type Currency struct {
	Code   string `json:"code,omitempty"`
	Name   string `json:"name,omitempty"`
	Symbol string `json:"symbol,omitempty"`
}

// TimeZone describes the local time zone of the looked-up location.
type TimeZone struct {
	Name            string  `json:"name,omitempty"`
	Offset          float64 `json:"offset,omitempty"`
	CurrentTime     string  `json:"current_time,omitempty"`
	CurrentTimeUnix float64 `json:"current_time_unix,omitempty"`
	IsDST           bool    `json:"is_dst,omitempty"`
	DSTSavings      float64 `json:"dst_savings,omitempty"`
}
