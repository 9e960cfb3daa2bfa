// ABOUTME: Backend endpoint paths consumed by the client
// ABOUTME: Mirrors the versioned REST routes of the JamboSec API

package api

const (
	endpointAuthSignup     = "/v1/auth/signup/"
	endpointAuthLogin      = "/v1/auth/login/"
	endpointAuthLogout     = "/v1/auth/logout/"
	endpointAuthRefresh    = "/v1/auth/refresh/"
	endpointAuthMe         = "/v1/auth/me/"
	endpointAuthMeUpdate   = "/v1/auth/me/update/"
	endpointAuthMeStats    = "/v1/auth/me/stats/"
	endpointAuthMeDelete   = "/v1/auth/me/delete/"
	endpointPasswordChange = "/v1/auth/password/change/"

	endpointChatAsk      = "/v1/chat/ask/"
	endpointChatSessions = "/v1/chat/sessions/"
	endpointChatFeedback = "/v1/chat/feedback/"

	endpointKnowledgeCategories = "/v1/knowledge/categories/"
	endpointKnowledgeGuides     = "/v1/knowledge/guides/"
	endpointKnowledgeLinks      = "/v1/knowledge/links/"
	endpointKnowledgeSearch     = "/v1/knowledge/search/"
	endpointKnowledgeSuggest    = "/v1/knowledge/ai-suggestion/"

	endpointCoreHealth = "/core/health"
)

func endpointChatSession(sessionID string) string {
	return endpointChatSessions + sessionID + "/"
}

func endpointChatMessages(sessionID string) string {
	return endpointChatSessions + sessionID + "/messages/"
}

func endpointKnowledgeGuide(slug string) string {
	return endpointKnowledgeGuides + slug + "/"
}

func endpointKnowledgeGuideFeedback(slug string) string {
	return endpointKnowledgeGuides + slug + "/feedback/"
}
