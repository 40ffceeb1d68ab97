package notification

type RegisterDeviceRequest struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"required,oneof=ios android web"`
}

func (r *RegisterDeviceRequest) Valid() bool {
	if r.Token == "" {
		return false
	}
	switch r.Platform {
	case "ios", "android", "web":
		return true
	}
	return false
}
