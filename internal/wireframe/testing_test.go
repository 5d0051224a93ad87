package wireframe

// validDocument returns a small document that passes every check.
func validDocument() *Document {
	return &Document{
		App: &App{
			Name:        "Drone Booking",
			Description: "Book drone flights",
			Theme:       DefaultTheme,
			Nav: &Nav{
				Type: NavTabs,
				Items: []NavItem{
					{Name: "Home", Icon: "home", Screen: "home"},
					{Name: "Profile", Icon: "user", Screen: "profile"},
				},
			},
		},
		Screens: []Screen{
			{
				Name:         "home",
				Title:        "Home",
				IsStartPoint: true,
				NextScreens:  []string{"profile"},
				Components: []Component{
					{
						ID:               "header-1",
						Type:             ComponentHeader,
						DataProperties:   map[string]any{"title": "Home"},
						DesignProperties: map[string]any{"height": 56},
					},
					{
						ID:               "button-2",
						Type:             ComponentButton,
						DataProperties:   map[string]any{"label": "Profile", "screen": "profile"},
						DesignProperties: map[string]any{"variant": "primary"},
					},
				},
			},
			{
				Name:  "profile",
				Title: "Profile",
				Components: []Component{
					{
						ID:               "avatar-1",
						Type:             ComponentAvatar,
						DataProperties:   map[string]any{"name": "Ada"},
						DesignProperties: map[string]any{"size": 48},
					},
				},
			},
		},
	}
}
