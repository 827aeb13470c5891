package main

import (
	"github.com/MKhiriev/go-pacs-sync/models"
	"github.com/alecthomas/kong"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	var params cli
	kctx := kong.Parse(&params,
		kong.Name("pacs-sync"),
		kong.Description("Incremental sync between imaging archives and a search index."),
		kong.UsageOnError(),
		kong.Vars{"version": build.String()},
	)

	err := kctx.Run(&params.Globals, build)
	kctx.FatalIfErrorf(err)
}
