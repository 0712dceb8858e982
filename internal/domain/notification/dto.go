package notification

type Response struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

type ListResponse struct {
	UnreadCount   int64      `json:"unread_count"`
	Notifications []Response `json:"notifications"`
}
