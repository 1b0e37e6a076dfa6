package contract

// UserShort is the minimal user representation used in nested contexts.
type UserShort struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserLiker is UserShort with the id renamed, matching the feed's likes list.
type UserLiker struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

type UserProfile struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Followers []UserShort `json:"followers"`
	Following []UserShort `json:"following"`
}

type ProfileResponse struct {
	ResultSuccess
	User UserProfile `json:"user"`
}
