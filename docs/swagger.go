package docs

// @title           Steady Backend API
// @version         1.0
// @description     Income steadiness scoring for gig-economy drivers: session aggregation, coefficient-of-variation scoring, zone-diversity entropy, peer percentile ranking and rolling volatility trends.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
