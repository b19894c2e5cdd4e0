package entity

type JobCategory struct {
	Id          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	DisplayName string `json:"displayName" db:"display_name"`
	Icon        string `json:"icon" db:"icon"`
	Description string `json:"description" db:"description"`
}

type Skill struct {
	Id         int64  `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	CategoryId *int64 `json:"categoryId" db:"category_id"`
}
