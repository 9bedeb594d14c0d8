// Package docs provides generated OpenAPI documentation.
//
// docaudit API
//
//	@title			docaudit API
//	@version		1.0
//	@description	Document tampering analysis API for uploading PDFs and retrieving reports and annotated overlays.
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	API Support
//	@contact.url	https://github.com/wyawin/docaudit
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/docaudit/serve.go -o ./swagger --parseDependency --parseInternal
