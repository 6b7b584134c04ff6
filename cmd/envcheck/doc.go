// Command envcheck resolves a configuration spec against the current
// environment and reports where every value came from.
//
//	envcheck show --spec config.spec.yaml --folder deploy
//	envcheck show --spec config.spec.yaml --file .env --output json
//	envcheck serve --spec config.spec.yaml --file .env --port 8080
//	envcheck version
//
// The spec file maps each key to its declaration:
//
//	DATABASE_URL:
//	  validate: string
//	  required: true
//	  secret: true
//	PORT:
//	  validate: int,min=1,max=65535
//	  default: 8080
//
// Exit status is 1 when the configuration does not resolve.
package main
