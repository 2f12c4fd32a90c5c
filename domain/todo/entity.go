package todo

// Todo is a single task record in the todos table.
type Todo struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string  `gorm:"not null" json:"title"`
	Description *string `json:"description"`
	Completed   bool    `gorm:"not null" json:"completed"`
}

// TableName returns the table name for Todo model.
func (Todo) TableName() string {
	return "todos"
}
