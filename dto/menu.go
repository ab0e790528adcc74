package dto

type MenuDishRequest struct {
	Type string `json:"type" binding:"required,oneof=main side drink dessert"`
	Name string `json:"name" binding:"required"`
}

type CreateMenuRequest struct {
	Date      string            `json:"date" binding:"required"` // YYYY-MM-DD
	Dishes    []MenuDishRequest `json:"dishes" binding:"required,min=1,dive"`
	Published *bool             `json:"published"`
}

type UpdateMenuRequest struct {
	Dishes    []MenuDishRequest `json:"dishes" binding:"omitempty,dive"`
	Published *bool             `json:"published"`
}

type RateMenuRequest struct {
	MenuID  string `json:"menuId" binding:"required"`
	Score   int    `json:"score" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
