package merge

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"kycgate/internal/identity/models"
)

// providerFields is the BVN payload split into the fields the merge reads by
// name and a remainder passed through under snake_case names.
type providerFields struct {
	OnWashlist       bool
	DOB              string
	FullName         string
	EnrollmentDate   string
	EnrollmentBank   string
	LGAOrigin        string
	LGAResidence     string
	FirstName        string
	MiddleName       string
	LastName         string
	Phone            string
	Email            string
	BVN              string
	RegistrationDate string
	Rest             map[string]any
}

type fieldMapping struct {
	External string
	Internal string
	assign   func(f *providerFields, v any)
}

// primaryFields maps provider names to the internal names the merge consumes.
// Keys listed here never reach the remainder.
var primaryFields = []fieldMapping{
	{"Washlist", "on_washlist", func(f *providerFields, v any) { f.OnWashlist = boolValue(v) }},
	{"DateOfBirth", "dob", func(f *providerFields, v any) { f.DOB = stringValue(v) }},
	{"FullName", "fullname", func(f *providerFields, v any) { f.FullName = stringValue(v) }},
	{"Enrollment_Date", "enrollment_date", func(f *providerFields, v any) { f.EnrollmentDate = stringValue(v) }},
	{"Enrollment_Bank", "enrollment_bank", func(f *providerFields, v any) { f.EnrollmentBank = stringValue(v) }},
	{"LGAOrigin", "lga_origin", func(f *providerFields, v any) { f.LGAOrigin = stringValue(v) }},
	{"LGAOfResidence", "lga_residence", func(f *providerFields, v any) { f.LGAResidence = stringValue(v) }},
	{"FirstName", "first_name", func(f *providerFields, v any) { f.FirstName = stringValue(v) }},
	{"MiddleName", "middle_name", func(f *providerFields, v any) { f.MiddleName = stringValue(v) }},
	{"LastName", "last_name", func(f *providerFields, v any) { f.LastName = stringValue(v) }},
	{"Phone", "Phone", func(f *providerFields, v any) { f.Phone = stringValue(v) }},
	{"Email", "Email", func(f *providerFields, v any) { f.Email = stringValue(v) }},
}

var primaryByExternal = func() map[string]fieldMapping {
	m := make(map[string]fieldMapping, len(primaryFields))
	for _, f := range primaryFields {
		m[f.External] = f
	}
	return m
}()

// PrimaryFieldMapping returns the external to internal name table.
func PrimaryFieldMapping() map[string]string {
	out := make(map[string]string, len(primaryFields))
	for _, f := range primaryFields {
		out[f.External] = f.Internal
	}
	return out
}

// extractFields splits details. Remainder names are snake_cased; bvn is lifted
// into its typed field and names shadowed by typed identity fields are dropped.
func extractFields(details models.BVNDetails) providerFields {
	f := providerFields{Rest: make(map[string]any)}
	for k, v := range details {
		if m, ok := primaryByExternal[k]; ok {
			m.assign(&f, v)
			continue
		}

		name := ToSnakeCase(k)
		switch {
		case name == "":
			continue
		case name == "bvn":
			f.BVN = stringValue(v)
		case models.IsTypedIdentityKey(name):
			continue
		default:
			f.Rest[name] = v
		}
	}
	// RegistrationDate stays in the remainder and also fills enrollment.
	f.RegistrationDate = stringValue(details["RegistrationDate"])
	return f
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func boolValue(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(t))
		return b
	default:
		return false
	}
}
