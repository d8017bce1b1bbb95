// Package network issues requests against a configured Environment and
// decodes JSON responses into typed models.
//
// A request runs through a fixed pipeline:
//
//	build -> transport -> classify -> decode -> completion
//
// Build joins the Environment base URL with the Endpoint path, applies the
// default headers followed by the endpoint headers and encodes the body. Only
// POST requests carry a body. The Transport runs once on its own goroutine and
// the completion is called exactly once on that goroutine. A build failure
// calls the completion immediately on the caller's goroutine.
//
// Models may implement Mapper to name the keys leading to their payload inside
// a response envelope:
//
//	type User struct {
//		ID   int    `json:"id"`
//		Name string `json:"name"`
//	}
//
//	func (User) MapJSON() []string { return []string{"data", "users"} }
//
// When the located value is an array the response carries List, otherwise
// Object.
//
// Example Usage:
//
//	env := network.NewEnvironment("https://api.example.com/v1", map[string]string{
//		"Accept": "application/json",
//	})
//	client := network.New(env, network.WithDebug(true))
//
//	ep := network.NewEndpoint("users", network.MethodGet, nil, nil, network.StringPost{})
//	network.Request(client, ep, func(resp network.Response[User]) {
//		if resp.Error != nil {
//			log.Println(resp.Error, resp.Raw)
//			return
//		}
//		for _, u := range resp.List {
//			fmt.Println(u.Name)
//		}
//	})
//
// Requests are never retried, cached or cancelled.
package network
