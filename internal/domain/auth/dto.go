// internal/domain/auth/dto.go
package auth

// EncodedCredentials is the login request body. The gateway expects both
// fields base64 encoded (obfuscated, not encrypted).
type EncodedCredentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the body returned by the login endpoint.
type LoginResponse struct {
	AccessToken      string           `json:"accessToken"`
	ExpiryDate       string           `json:"expiryDate"`
	CSRFToken        string           `json:"csrfToken"`
	UserName         string           `json:"userName"`
	Email            string           `json:"email"`
	CompanyID        string           `json:"companyId"`
	IsFirstTimeLogin bool             `json:"isFirstTimeLogin"`
	Roles            []string         `json:"roles"`
	RolePermissions  []RolePermission `json:"rolePermissions"`
}

// RolePermission groups page permissions under a role.
type RolePermission struct {
	RoleID      string       `json:"roleId"`
	RoleName    string       `json:"roleName"`
	Permissions []Permission `json:"permissions"`
}

// Permission describes page-level access flags.
type Permission struct {
	PageID     string `json:"pageId"`
	PageName   string `json:"pageName"`
	SortBy     int    `json:"sortBy"`
	IsRead     int    `json:"isRead"`
	IsWrite    int    `json:"isWrite"`
	IsModify   int    `json:"isModify"`
	IsDownload int    `json:"isDownload"`
	IsDelete   int    `json:"isDelete"`
}
