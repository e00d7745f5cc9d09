// Package config loads reconcile configuration files.
//
// The configuration lives in reconcile.json, reconcile.yaml or
// reconcile.yml. Missing fields keep their defaults.
//
// # Configuration File Structure
//
//	{
//	  "dev": true,
//	  "textInputTypes": ["text", "number", "password", "search", "email", "tel", "url"],
//	  "ignoredElements": ["my-widget", "/^x-/"],
//	  "serverRenderedAttr": "data-server-rendered",
//	  "metrics": {"enabled": true, "namespace": "reconcile"},
//	  "tracing": {"enabled": false, "tracerName": "reconcile"},
//	  "server": {"addr": ":3000", "path": "/live"}
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	opts, _ := cfg.PatchOptions()
//	p := patch.New(host, modules.Default(host), opts...)
package config
