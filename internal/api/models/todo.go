package models

// Todo represents a row in the todos table. Every todo belongs to exactly
// one user via OwnerID.
type Todo struct {
	ID          int64  `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
	Priority    int    `db:"priority" json:"priority"`
	Complete    bool   `db:"complete" json:"complete"`
	OwnerID     int64  `db:"owner_id" json:"owner_id"`
}

// TodoRequest is the payload for both create and update. The bounds mirror
// the stored schema: short titles and unbounded descriptions are rejected.
type TodoRequest struct {
	Title       string `json:"title" binding:"required,min=3" validate:"required,min=3"`
	Description string `json:"description" binding:"required,min=3,max=200" validate:"required,min=3,max=200"`
	Priority    int    `json:"priority" binding:"required,gte=1,lte=10" validate:"required,gte=1,lte=10"`
	Complete    bool   `json:"complete"`
}
