package dto

// UpdateProfileRequest carries optional profile edits; absent fields
// are left untouched. Status is honored only for admin callers.
type UpdateProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone    *string `json:"phone" validate:"omitempty"`
	Address  *string `json:"address" validate:"omitempty"`
	Avatar   *string `json:"avatar" validate:"omitempty,url"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Status   *string `json:"status" validate:"omitempty,oneof=active suspended banned pending_deletion"`
}

// UpdateRoleRequest payload for admin role changes.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user business"`
}

// FavoritesResponse lists saved service and property ids.
type FavoritesResponse struct {
	Services   []int64 `json:"services"`
	Properties []int64 `json:"properties"`
}
