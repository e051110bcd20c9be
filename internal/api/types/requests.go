package types

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Nickname string `json:"nickname" validate:"required,max=64"`
}

type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type PostCreateRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

type CommentCreateRequest struct {
	Content string `json:"content" validate:"required"`
}

type TopicCreateRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
}

type RatingCreateRequest struct {
	TopicID uint   `json:"topic_id" validate:"required"`
	Score   int    `json:"score" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
