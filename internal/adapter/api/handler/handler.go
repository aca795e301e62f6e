package handler

// Handlers is every HTTP handler the router mounts, built once in main.
type Handlers struct {
	Auth     *AuthHandler
	Password *PasswordHandler
	User     *UserHandler
	Game     *GameHandler
	Order    *OrderHandler
	Library  *LibraryHandler
	Review   *ReviewHandler
	Wishlist *WishlistHandler
	Admin    *AdminHandler
	Upload   *UploadHandler
	Health   *HealthHandler
}
