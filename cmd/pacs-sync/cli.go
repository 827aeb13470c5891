package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-pacs-sync/internal/app"
	"github.com/MKhiriev/go-pacs-sync/internal/config"
	"github.com/MKhiriev/go-pacs-sync/internal/logger"
	"github.com/MKhiriev/go-pacs-sync/internal/service"
	"github.com/MKhiriev/go-pacs-sync/models"
	"github.com/alecthomas/kong"
)

type Globals struct {
	Config   string           `help:"JSON configuration file; overrides the CONFIG variable" placeholder:"PATH"`
	LogLevel string           `help:"Log level (debug, info, warn, error)" placeholder:"LEVEL"`
	Version  kong.VersionFlag `help:"Print build information and exit"`
}

type cli struct {
	Globals

	Replicate            replicateCmd            `cmd:"" help:"Copy instances missing from the destination archive"`
	ReplicateTags        replicateTagsCmd        `cmd:"" aliases:"replicate_tags" help:"Index flattened series tags missing from the index"`
	ConditionalReplicate conditionalReplicateCmd `cmd:"" aliases:"conditional_replicate" help:"Copy the instances selected by an index query"`
	UpdateDoseReports    updateDoseReportsCmd    `cmd:"" aliases:"update_dose_reports" help:"Index the dose structured reports of indexed series"`
	IndexRemote          indexRemoteCmd          `cmd:"" aliases:"index_remote" help:"Index the studies a remote modality holds"`
	Serve                serveCmd                `cmd:"" help:"Run the status API and the scheduled sync job"`
}

type SrcFlag struct {
	Src string `help:"Source archive URL, credentials may be embedded" placeholder:"URL"`
}

type DestFlag struct {
	Dest string `help:"Destination archive URL" placeholder:"URL"`
}

type IndexFlag struct {
	Index string `help:"Index search (management) URL" placeholder:"URL"`
}

type HECFlags struct {
	HEC      string `name:"hec" help:"Index event collector URL" placeholder:"URL"`
	HECToken string `name:"hec-token" help:"Event collector token"`
}

func (f SrcFlag) apply(cfg *config.StructuredConfig)   { cfg.Source.Address = f.Src }
func (f DestFlag) apply(cfg *config.StructuredConfig)  { cfg.Destination.Address = f.Dest }
func (f IndexFlag) apply(cfg *config.StructuredConfig) { cfg.Index.Search.Address = f.Index }
func (f HECFlags) apply(cfg *config.StructuredConfig) {
	cfg.Index.Collector.Address = f.HEC
	cfg.Index.Collector.Token = f.HECToken
}

type replicateCmd struct {
	SrcFlag
	DestFlag
}

func (c *replicateCmd) Run(g *Globals, build models.AppBuildInfo) error {
	return g.runWorkflow(service.WorkflowReplicate, build, c.overrides(), config.NeedSource, config.NeedDestination)
}

func (c *replicateCmd) overrides() *config.StructuredConfig {
	cfg := &config.StructuredConfig{}
	c.SrcFlag.apply(cfg)
	c.DestFlag.apply(cfg)
	return cfg
}

type replicateTagsCmd struct {
	SrcFlag
	IndexFlag
	HECFlags
}

func (c *replicateTagsCmd) Run(g *Globals, build models.AppBuildInfo) error {
	return g.runWorkflow(service.WorkflowSeriesSync, build, c.overrides(),
		config.NeedSource, config.NeedSearch, config.NeedCollector)
}

func (c *replicateTagsCmd) overrides() *config.StructuredConfig {
	cfg := &config.StructuredConfig{}
	c.SrcFlag.apply(cfg)
	c.IndexFlag.apply(cfg)
	c.HECFlags.apply(cfg)
	return cfg
}

type conditionalReplicateCmd struct {
	SrcFlag
	DestFlag
	IndexFlag
	Query string `help:"Index query selecting the instances to copy" placeholder:"QUERY"`
}

func (c *conditionalReplicateCmd) Run(g *Globals, build models.AppBuildInfo) error {
	return g.runWorkflow(service.WorkflowConditionalReplicate, build, c.overrides(),
		config.NeedSource, config.NeedDestination, config.NeedSearch)
}

func (c *conditionalReplicateCmd) overrides() *config.StructuredConfig {
	cfg := &config.StructuredConfig{}
	c.SrcFlag.apply(cfg)
	c.DestFlag.apply(cfg)
	c.IndexFlag.apply(cfg)
	cfg.Workflows.Query = c.Query
	return cfg
}

type updateDoseReportsCmd struct {
	SrcFlag
	IndexFlag
	HECFlags
}

func (c *updateDoseReportsCmd) Run(g *Globals, build models.AppBuildInfo) error {
	return g.runWorkflow(service.WorkflowDoseReports, build, c.overrides(),
		config.NeedSource, config.NeedSearch, config.NeedCollector)
}

func (c *updateDoseReportsCmd) overrides() *config.StructuredConfig {
	cfg := &config.StructuredConfig{}
	c.SrcFlag.apply(cfg)
	c.IndexFlag.apply(cfg)
	c.HECFlags.apply(cfg)
	return cfg
}

type indexRemoteCmd struct {
	SrcFlag
	IndexFlag
	HECFlags
	Modality string `help:"Archive alias of the remote modality" placeholder:"AET"`
}

func (c *indexRemoteCmd) Run(g *Globals, build models.AppBuildInfo) error {
	return g.runWorkflow(service.WorkflowRemoteIndex, build, c.overrides(),
		config.NeedSource, config.NeedSearch, config.NeedCollector, config.NeedRemoteModality)
}

func (c *indexRemoteCmd) overrides() *config.StructuredConfig {
	cfg := &config.StructuredConfig{}
	c.SrcFlag.apply(cfg)
	c.IndexFlag.apply(cfg)
	c.HECFlags.apply(cfg)
	cfg.Workflows.RemoteModality = c.Modality
	return cfg
}

type serveCmd struct {
	SrcFlag
	DestFlag
	IndexFlag
	HECFlags
	Listen string `help:"Status API listen address" placeholder:"HOST:PORT"`
}

func (c *serveCmd) Run(g *Globals, build models.AppBuildInfo) error {
	cfg, log, err := g.load("serve", c.overrides(), config.NeedServer, config.NeedWorkers)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	a, err := app.NewApp(ctx, cfg, build, log)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Serve(ctx)
}

func (c *serveCmd) overrides() *config.StructuredConfig {
	cfg := &config.StructuredConfig{}
	c.SrcFlag.apply(cfg)
	c.DestFlag.apply(cfg)
	c.IndexFlag.apply(cfg)
	c.HECFlags.apply(cfg)
	cfg.Server.HTTPAddress = c.Listen
	return cfg
}

// load merges the configuration with overrides, checks that the command's
// endpoints are present and builds the process logger.
func (g *Globals) load(role string, overrides *config.StructuredConfig, needs ...config.Need) (*config.StructuredConfig, *logger.Logger, error) {
	overrides.JSONFilePath = g.Config
	overrides.Log.Level = g.LogLevel

	cfg, err := config.GetStructuredConfig(overrides)
	if err != nil {
		return nil, nil, err
	}
	if err = cfg.Require(needs...); err != nil {
		return nil, nil, err
	}

	log := logger.NewFileLogger(role, cfg.Log.File)
	logger.SetLevel(cfg.Log.Level)
	log.Debug().Any("config", cfg.Redacted()).Msg("received configs")

	return cfg, log, nil
}

func (g *Globals) runWorkflow(name string, build models.AppBuildInfo, overrides *config.StructuredConfig, needs ...config.Need) error {
	cfg, log, err := g.load(name, overrides, needs...)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	a, err := app.NewApp(ctx, cfg, build, log)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.RunWorkflow(ctx, name)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
