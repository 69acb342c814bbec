package shopkeeper

type Config struct {
	CookieSecure    bool
	AdminWebHostURL string
	SessionDays     int
}
