package student

const (
	MsgSignupSuccess = "User created successfully"
	MsgLoginSuccess  = "Login successful"
)

// ImageField is the multipart field carrying a photo.
const ImageField = "image"

type SignupRequest struct {
	EnrollNumber string `form:"enroll_number" validate:"required,max=20,excludesall=/\\"`
	Password     string `form:"password" validate:"required,max=72"`
	FullName     string `form:"full_name" validate:"max=100"`
	Email        string `form:"email" validate:"max=100"`
	Batch        string `form:"batch" validate:"max=50"`
	Course       string `form:"course" validate:"max=100"`
}

type LoginRequest struct {
	EnrollNumber string `form:"enroll_number"`
	Password     string `form:"password"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SignupResult struct {
	EnrollNumber  string
	ImageFilename string
	HasEmbedding  bool
}

type BackfillResult struct {
	Scanned  int
	Created  int
	NoFace   int
	Failures int
}
