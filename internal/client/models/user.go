package models

type Role string

const (
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
)

type Profile struct {
	Title    string `json:"title,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Location string `json:"location,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type User struct {
	ID        string   `json:"_id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Role      Role     `json:"role"`
	Company   string   `json:"company,omitempty"`
	Profile   *Profile `json:"profile,omitempty"`
	ResumeURL string   `json:"resumeUrl,omitempty"`
}

func (u User) RefID() string { return u.ID }

func (u User) IsCandidate() bool { return u.Role == RoleCandidate }
func (u User) IsEmployer() bool  { return u.Role == RoleEmployer }

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     Role   `json:"role" validate:"required,oneof=candidate employer"`
	Company  string `json:"company,omitempty" validate:"required_if=Role employer"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthPayload is the data of register, login and me responses.
type AuthPayload struct {
	User User `json:"user"`
}
