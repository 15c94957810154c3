// Package docs holds the OpenAPI document served at /swagger. The route
// summary below is maintained by hand; add an entry here when a route is
// added, alongside the handler's annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/store/parts": {"get": {"tags": ["Storefront - Parts"], "summary": "List parts", "responses": {"200": {"description": "OK"}}}},
        "/store/parts/filters": {"get": {"tags": ["Storefront - Parts"], "summary": "Filter metadata", "responses": {"200": {"description": "OK"}}}},
        "/store/parts/{slug}": {"get": {"tags": ["Storefront - Parts"], "summary": "Part by slug", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/store/vehicles": {"get": {"tags": ["Storefront - Parts"], "summary": "Vehicle list", "responses": {"200": {"description": "OK"}}}},
        "/obd-codes/search": {"get": {"tags": ["Storefront - Diagnostics"], "summary": "Search codes", "responses": {"200": {"description": "OK"}}}},
        "/obd-codes/{code}": {"get": {"tags": ["Storefront - Diagnostics"], "summary": "Code with solutions", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/obd-codes/submissions": {"post": {"tags": ["Storefront - Diagnostics"], "summary": "Report a code", "responses": {"201": {"description": "Created"}}}},
        "/cart": {
            "get": {"tags": ["Storefront - Cart"], "summary": "Get cart", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Storefront - Cart"], "summary": "Empty the cart", "responses": {"200": {"description": "OK"}}}
        },
        "/cart/items": {"post": {"tags": ["Storefront - Cart"], "summary": "Add a part to the cart", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/cart/items/{partId}": {
            "patch": {"tags": ["Storefront - Cart"], "summary": "Set a line quantity", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Storefront - Cart"], "summary": "Remove a line", "responses": {"200": {"description": "OK"}}}
        },
        "/checkout": {"get": {"tags": ["Storefront - Checkout"], "summary": "Current checkout state", "responses": {"200": {"description": "OK"}}}},
        "/checkout/shipping": {"post": {"tags": ["Storefront - Checkout"], "summary": "Submit shipping details", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/checkout/payment": {"post": {"tags": ["Storefront - Checkout"], "summary": "Start card payment", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/checkout/complete": {"post": {"tags": ["Storefront - Checkout"], "summary": "Complete checkout", "responses": {"201": {"description": "Created"}, "402": {"description": "Payment Required"}, "502": {"description": "Bad Gateway"}}}},
        "/contact": {"post": {"tags": ["Storefront - Contact"], "summary": "Contact form", "responses": {"200": {"description": "OK"}}}},
        "/service-requests": {"post": {"tags": ["Storefront - Contact"], "summary": "Book a service", "responses": {"200": {"description": "OK"}}}},
        "/orders/lookup": {"get": {"tags": ["Storefront - Orders"], "summary": "Look up an order", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/admin/login": {"post": {"tags": ["Admin - Auth"], "summary": "Admin login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/admin/parts": {
            "get": {"tags": ["Admin - Parts"], "summary": "List parts", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Admin - Parts"], "summary": "Create part", "responses": {"201": {"description": "Created"}}}
        },
        "/admin/obd-codes": {
            "get": {"tags": ["Admin - Diagnostics"], "summary": "List codes", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Admin - Diagnostics"], "summary": "Create code", "responses": {"201": {"description": "Created"}}}
        },
        "/admin/orders": {"get": {"tags": ["Admin - Orders"], "summary": "List orders", "responses": {"200": {"description": "OK"}}}},
        "/admin/orders/reconciliation": {"get": {"tags": ["Admin - Orders"], "summary": "Payments awaiting an order", "responses": {"200": {"description": "OK"}}}},
        "/admin/orders/reconciliation/{intentId}": {"delete": {"tags": ["Admin - Orders"], "summary": "Dismiss a reconciliation entry", "responses": {"200": {"description": "OK"}}}},
        "/admin/orders/{id}/status": {"patch": {"tags": ["Admin - Orders"], "summary": "Update order status", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/admin/analytics/monthly-revenue": {"get": {"tags": ["Admin - Analytics"], "summary": "Monthly revenue, last 12 months", "responses": {"200": {"description": "OK"}}}},
        "/admin/analytics/top-parts": {"get": {"tags": ["Admin - Analytics"], "summary": "Best selling parts", "responses": {"200": {"description": "OK"}}}},
        "/admin/analytics/countries": {"get": {"tags": ["Admin - Analytics"], "summary": "Orders by shipping country", "responses": {"200": {"description": "OK"}}}},
        "/admin/admins/{id}/status": {"patch": {"tags": ["Admin - Management"], "summary": "Suspend or reactivate an admin", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8081",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "JP Performance Cars API",
	Description:      "Parts catalog, OBD diagnostics, cart, checkout and admin CMS for JP Performance Cars.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
