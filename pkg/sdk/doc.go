// Package artcollector is an embeddable Go client for the Harvard Art Museums
// catalog, built on the same components as the artcollector web UI.
//
// Option lists and the daily request counter live in process memory by default,
// or in Valkey/Redis when several processes should share them.
//
//	client, _ := artcollector.New(ctx,
//	    artcollector.WithAPIKey(os.Getenv("HAM_API_KEY")),
//	    artcollector.WithDailyQuota(2500, true),
//	)
//	defer client.Close()
//
//	opts, _ := client.Options(ctx)
//	page, _ := client.Search(ctx, artcollector.Query{Keywords: "river", Classification: "Paintings"})
//	for page.HasNext() {
//	    page, _ = client.Next(ctx, page)
//	}
//	byArtist, _ := client.Lookup(ctx, artcollector.TermPerson, "Claude Monet")
package artcollector
