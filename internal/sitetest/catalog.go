package sitetest

import "fmt"

// Title ids of the seeded catalogue.
const (
	Endgame      = 4511
	NoWayHome    = 5032
	BlackPanther = 1888
	WandaVision  = 6020

	// WandaVisionPlayer is the player id of WandaVision's first episode.
	WandaVisionPlayer = 91234
	// WandaVisionEpisode is the first episode of the loaded season.
	WandaVisionEpisode = 41001
)

func (s *Site) seed() {
	s.Searches["Avengers: Endgame"] = `{"data":[{"id":4511,"slug":"avengers-endgame","name":"Avengers: Endgame","type":"movie","score":"8.4"}]}`
	s.Searches["Spider-Man: No Way Home"] = `{"data":[{"id":5032,"slug":"spider-man-no-way-home","name":"Spider-Man: No Way Home","type":"movie"}]}`
	s.Searches["Black Panther"] = `{"data":[` +
		`{"id":77,"slug":"black-panther-collection","name":"Black Panther Collection","type":"collection"},` +
		`{"id":1888,"slug":"black-panther","name":"Black Panther","type":"movie"},` +
		`{"id":2950,"slug":"black-panther-wakanda-forever","name":"Black Panther: Wakanda Forever","type":"movie"}]}`
	s.Searches["Thor: Ragnarok"] = `{"data":[]}`
	s.Searches["WandaVision"] = `{"data":[{"id":6020,"slug":"wandavision","name":"WandaVision","type":"tv"}]}`

	s.Pages[Endgame] = moviePage(Endgame)
	s.Pages[NoWayHome] = moviePage(NoWayHome)
	s.Pages[BlackPanther] = moviePage(BlackPanther)
	s.Pages[WandaVision] = `{"component":"Titles/Title","props":{` +
		`"title":{"id":6020,"type":"tv","seasons":[{"id":301,"number":1}]},` +
		`"loadedSeason":{"id":301,"number":1,"episodes":[{"id":41001,"number":1},{"id":41002,"number":2}]}` +
		`},"url":"/it/titles/6020-wandavision","version":"` + Version + `"}`

	s.Frames[Endgame] = framePage(ServerURL + "/embed/4511?token=ab12&amp;canPlayFHD=1")
	s.Frames[NoWayHome] = framePage(ServerURL + "/embed/5032")
	s.Frames[BlackPanther] = framePage("/embed/1888")
	s.Frames[WandaVision] = framePage(fmt.Sprintf("%s/embed/%d?e=%d", ServerURL, WandaVisionPlayer, WandaVisionEpisode))

	s.Players[Endgame] = playerPage(`
            window.video = {"id":4511,"name":"Avengers: Endgame","filename":"Avengers.Endgame.2019.mkv","size":3512,"quality":1080,"duration":181,"views":0,"is_viewable":1,"status":"public","fps":23.976,"legacy":0,"folder_id":"a1b2","created_at_diff":"1 year ago"};
            window.streams = [{"name":"Server1","active":false,"url":"https:\/\/vixcloud.co\/playlist\/4511?b=1&ub=1"},{"name":"Server2","active":1,"url":"https:\/\/vixcloud.co\/playlist\/4511?b=1&ab=1"}];
            window.masterPlaylist = {
                params: {
                    'token': 'f3b2c1d0e9a8',
                    'expires': '1735689600',
                    'asn': '',
                },
                url: 'https://vixcloud.co/playlist/4511?b=1',
            }
            window.canPlayFHD = true
`)

	s.Players[NoWayHome] = playerPage(`
    var player = null;
    window.masterPlaylist = {
        params: {
            'token': 'a1B2-c3',
            'expires': 1735700000
        },
        url: 'https://vixcloud.co/playlist/5032?b:1'
    };
    window.canPlayFHD = false;
`)

	s.Players[BlackPanther] = playerPage(`
            window.masterPlaylist = {
                params: {
                    'token': 'bp77',
                    'expires': '1735711111',
                },
                url: 'https://vixcloud.co/playlist/1888',
            }
            window.canPlayFHD = true
`)

	s.Players[WandaVisionPlayer] = playerPage(`
            window.video = {"id":91234,"name":"WandaVision S01E01","quality":1080};
            window.masterPlaylist = {
                params: {
                    'token': 'w4nd4',
                    'expires': '1735722222',
                    'asn': '',
                },
                url: 'https://vixcloud.co/playlist/91234?b=1',
            }
            window.canPlayFHD = true
`)
}

func moviePage(id int) string {
	return fmt.Sprintf(`{"component":"Titles/Title","props":{"title":{"id":%d,"type":"movie","seasons":[]},"loadedSeason":null},"url":"/it/titles/%d","version":%q}`, id, id, Version)
}

func framePage(src string) string {
	return `<!DOCTYPE html><html><head><title>embed</title></head><body>` +
		`<iframe src="` + src + `" frameborder="0" allowfullscreen></iframe>` +
		`</body></html>`
}

func playerPage(script string) string {
	return `<!DOCTYPE html><html><head>` +
		`<script src="/js/player.js"></script>` +
		`<script>window.settings = {"autoplay":false};</script>` +
		`<script>` + script + `</script>` +
		`</head><body><div id="player"></div></body></html>`
}
