// Package docs provides the Swagger documentation for the API.
package docs

// @title           Hulukipedia Gateway
// @version         1.0
// @description     Routes text and image generation requests to configured model providers by alias, provider or agent default.

// @contact.name   Hulukipedia
// @contact.url    https://github.com/hulukipedia/gateway

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @BasePath  /
