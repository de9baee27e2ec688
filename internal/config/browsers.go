package config

import "path/filepath"

// Browser describes where a browser keeps the data the cleaner can remove.
type Browser struct {
	// Name is the category name shown to the user.
	Name string

	// Icon is the icon key rendered next to the category.
	Icon string

	// Folder is the install folder, probed under both LocalAppData and
	// RoamingAppData to decide whether the browser is present.
	Folder string

	// Roaming selects RoamingAppData as the base of Profile.
	Roaming bool

	// Profile is the profile directory relative to Folder. When MultiProfile
	// is set it is a directory holding one subdirectory per profile.
	Profile      string
	MultiProfile bool

	// LocalCache resolves Cache against the same profile path under
	// LocalAppData instead of the roaming profile.
	LocalCache bool

	Cache   string
	Cookies string
	History string
}

var (
	chromiumDefault = filepath.Join("User Data", "Default")
	chromiumCookies = filepath.Join("Network", "Cookies")
)

// Browsers is the table of browsers the catalog probes, in display order.
var Browsers = []Browser{
	{
		Name:    "Google Chrome",
		Icon:    "chrome",
		Folder:  filepath.Join("Google", "Chrome"),
		Profile: chromiumDefault,
		Cache:   "Cache",
		Cookies: chromiumCookies,
		History: "History",
	},
	{
		Name:         "Mozilla Firefox",
		Icon:         "firefox",
		Folder:       filepath.Join("Mozilla", "Firefox"),
		Roaming:      true,
		Profile:      "Profiles",
		MultiProfile: true,
		LocalCache:   true,
		Cache:        "cache2",
		Cookies:      "cookies.sqlite",
		History:      "places.sqlite",
	},
	{
		Name:    "Yandex Browser",
		Icon:    "yandex",
		Folder:  filepath.Join("Yandex", "YandexBrowser"),
		Profile: chromiumDefault,
		Cache:   "Cache",
		Cookies: chromiumCookies,
		History: "History",
	},
	{
		Name:    "Microsoft Edge",
		Icon:    "edge",
		Folder:  filepath.Join("Microsoft", "Edge"),
		Profile: chromiumDefault,
		Cache:   "Cache",
		Cookies: chromiumCookies,
		History: "History",
	},
	{
		Name:    "Opera",
		Icon:    "opera",
		Folder:  filepath.Join("Opera Software", "Opera Stable"),
		Roaming: true,
		Cache:   "Cache",
		Cookies: chromiumCookies,
		History: "History",
	},
	{
		Name:    "Brave",
		Icon:    "brave",
		Folder:  filepath.Join("BraveSoftware", "Brave-Browser"),
		Profile: chromiumDefault,
		Cache:   "Cache",
		Cookies: chromiumCookies,
		History: "History",
	},
}
