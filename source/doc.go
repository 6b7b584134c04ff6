// Package source locates and reads the file-based configuration layer and
// captures the process environment snapshot it is merged with.
//
// Exactly one Strategy picks the file:
//
//	source.File("config/local.env")          // literal path under the root folder
//	source.EnvFolder("deploy")               // <root>/deploy/config/<$NODE_ENV>.env
//	source.Func(func(root, env string) string {
//	    return root + "/settings/" + env + ".env"
//	})
//
// Files use dotenv syntax (KEY=VALUE, # comments, blank lines ignored).
// Files ending in .yaml, .yml, .json or .toml are read as structured
// configuration and flattened to upper-case underscore keys, so
// "database.host" becomes DATABASE_HOST.
package source
