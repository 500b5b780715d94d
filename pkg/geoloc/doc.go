// Package geoloc provides a client for the ipgeolocation.io IPv4
// geolocation API.
//
// A lookup is one synchronous GET against the provider's /ipgeo
// endpoint carrying the API key, the target address, and an optional
// field filter. Input is validated client-side before any network
// call: the address must be a dotted-quad IPv4 string and every
// requested field must belong to the provider's field catalog.
//
// Results are exposed as both a raw mapping (Response.Value) and a
// typed record (Response.Record). A result can be persisted to a
// store backend on explicit request (Response.Cache); the client
// never consults the store unless asked to (Options.FromCache).
//
// # Usage
//
//	client := geoloc.NewClient(geoloc.Config{Key: apiKey})
//	resp, err := client.Lookup(ctx, "8.8.8.8", geoloc.Options{
//	    Fields: []string{"country_name", "isp"},
//	})
//	if err != nil {
//	    return err
//	}
//	country, _ := resp.Value("country_name")
//
// Errors are typed: see [github.com/Xavi-Linux/geoapy/pkg/apierr].
package geoloc
