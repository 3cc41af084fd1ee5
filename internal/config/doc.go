// Package config provides configuration parsing for navkit projects.
//
// The configuration is stored in navkit.json at the project root. Settings
// are layered with viper: built-in defaults, then the file, then
// NAVKIT_-prefixed environment variables (NAVKIT_MODE, NAVKIT_SERVER_ADDR,
// ...). The route table is read from the file only.
//
// # Configuration File Structure
//
//	{
//	  "name": "demo",
//	  "mode": "hash",
//	  "base": "",
//	  "maxRedirects": 20,
//	  "routes": [
//	    {"path": "/", "redirect": {"name": "home"}},
//	    {"name": "home", "path": "/home", "view": "Welcome home."},
//	    {"name": "item", "path": "/items/:id", "view": "One item."},
//	    {"path": "/old/:id", "redirect": {"name": "item", "params": {"id": "1"}}}
//	  ],
//	  "server": {
//	    "addr": "localhost:8080",
//	    "readBufferSize": 1024,
//	    "writeBufferSize": 1024,
//	    "metrics": true
//	  }
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
//	table, _ := cfg.Table()
package config
