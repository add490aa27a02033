package model

type Role string

const (
	RoleMainAdmin     Role = "main_admin"
	RoleFirstDivision Role = "first_division"
	RoleOtherDivision Role = "other_division"
	RoleClient        Role = "client"
)

// Roles lists roles in the order the registration drop-down shows them.
var Roles = []Role{RoleClient, RoleMainAdmin, RoleFirstDivision, RoleOtherDivision}

func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

func (r Role) Label() string {
	switch r {
	case RoleMainAdmin:
		return "Main Admin"
	case RoleFirstDivision:
		return "First Division"
	case RoleOtherDivision:
		return "Other Division"
	case RoleClient:
		return "Client (RM)"
	}
	return string(r)
}

// User only drives the registration form and the welcome toast; it is never stored.
type User struct {
	Username string
	Password string
	Role     Role
}

const StatusPending = "Pending"

var TimeSlots = []string{
	"9:00 - 10:30",
	"10:00 - 11:30",
	"13:00 - 14:30",
	"14:30 - 16:00",
	"16:00 - 17:30",
}

func ValidSlot(s string) bool {
	for _, slot := range TimeSlots {
		if slot == s {
			return true
		}
	}
	return false
}

// MeetingForm holds the demo-scheduling fields as entered.
type MeetingForm struct {
	CompanyName   string `json:"companyName"`
	ContactPerson string `json:"contactPerson"`
	ContactNumber string `json:"contactNumber"`
	MeetingDate   string `json:"meetingDate"`
	MeetingTime   string `json:"meetingTime"`
	ClientEmails  string `json:"clientEmails"`
	TeamEmails    string `json:"teamEmails"`
}

type MeetingRequest struct {
	MeetingForm
	ID            int64  `json:"id"`
	Status        string `json:"status"`
	DateSubmitted string `json:"dateSubmitted"`
}

type Notification struct {
	Title       string
	Description string
}
