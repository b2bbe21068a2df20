package models

// Envelope is the body of every JSON response.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// SignInResponse is returned by sign-in and refresh.
type SignInResponse struct {
	AccessToken string `json:"accessToken"`
	ID          string `json:"id"`
	Email       string `json:"email"`
}

// CredentialsRequest is the body of sign-up and sign-in.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LinkRequest is the body of link create and update.
type LinkRequest struct {
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
	URL        string `json:"url"`
}

// ShareRequest is the body of POST /api/shares. LinkIDs selects the bulk form.
type ShareRequest struct {
	LinkID     string   `json:"linkId"`
	UserID     string   `json:"userId"`
	LinkIDs    []string `json:"linkIds"`
	UserIDs    []string `json:"userIds"`
	IsWritable bool     `json:"isWritable"`
}

// IsBulk reports whether the request uses the many-links, many-users form.
func (r *ShareRequest) IsBulk() bool {
	return r.LinkIDs != nil || r.UserIDs != nil
}

// IsWellFormedBulk reports whether a bulk request names both lists and no
// singular ids. Empty lists are allowed.
func (r *ShareRequest) IsWellFormedBulk() bool {
	return r.LinkIDs != nil && r.UserIDs != nil && r.LinkID == "" && r.UserID == ""
}

// ShareUpdateRequest is the body of PUT /api/shares/:id.
type ShareUpdateRequest struct {
	IsWritable *bool `json:"isWritable"`
}
