package domain

// DefaultCatalog returns the built-in station list. Callers get a fresh
// slice each time; ratings accumulate on the caller's copy.
func DefaultCatalog() []Station {
	return []Station{
		{
			Name:        "Groove Salad",
			Genre:       "Ambient/Downtempo",
			Description: "A nicely chilled plate of ambient and downtempo beats.",
			StreamURL:   "https://ice1.somafm.com/groovesalad-128-mp3",
			CoverArt:    "https://somafm.com/img/groovesalad120.png",
			Location:    &Location{Lat: 37.7749, Lng: -122.4194, City: "San Francisco"},
		},
		{
			Name:        "Drone Zone",
			Genre:       "Ambient/Space",
			Description: "Atmospheric textures with minimal beats.",
			StreamURL:   "https://ice1.somafm.com/dronezone-128-mp3",
			CoverArt:    "https://somafm.com/img/dronezone120.jpg",
			Location:    &Location{Lat: 37.7749, Lng: -122.4194, City: "San Francisco"},
		},
		{
			Name:        "Nightride FM",
			Genre:       "Synthwave/Electronic",
			Description: "Synthwave, retrowave and outrun around the clock.",
			StreamURL:   "https://stream.nightride.fm/nightride.mp3",
			CoverArt:    "https://nightride.fm/img/nightride.png",
		},
		{
			Name:        "FIP",
			Genre:       "Eclectic/Jazz, World",
			Description: "Jazz, chanson, world and everything in between from Paris.",
			StreamURL:   "https://icecast.radiofrance.fr/fip-midfi.mp3",
			Location:    &Location{Lat: 48.8566, Lng: 2.3522, City: "Paris"},
		},
		{
			Name:        "Radio Paradise",
			Genre:       "Rock/Eclectic",
			Description: "DJ-mixed modern and classic rock, electronica and more.",
			StreamURL:   "https://stream.radioparadise.com/mp3-128",
			Location:    &Location{Lat: 39.7285, Lng: -121.8375, City: "Paradise"},
		},
		{
			Name:        "Jazz24",
			Genre:       "Jazz",
			Description: "Straight-ahead jazz from Seattle, 24 hours a day.",
			StreamURL:   "https://live.wostreaming.net/direct/ppm-jazz24mp3-ibc1",
			Location:    &Location{Lat: 47.6062, Lng: -122.3321, City: "Seattle"},
		},
		{
			Name:        "Deep Space One",
			Genre:       "Ambient/Experimental",
			Description: "Deep ambient electronic and space music.",
			StreamURL:   "https://ice1.somafm.com/deepspaceone-128-mp3",
			CoverArt:    "https://somafm.com/img/deepspaceone120.gif",
		},
		{
			Name:        "Metal Detector",
			Genre:       "Metal/Rock",
			Description: "From black to doom, thrash to post, metal in all its forms.",
			StreamURL:   "https://ice1.somafm.com/metal-128-mp3",
			CoverArt:    "https://somafm.com/img/metal120.png",
		},
	}
}
