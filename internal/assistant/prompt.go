package assistant

import "fmt"

// systemPrompt frames every upstream request around the election security
// monitoring mission.
const systemPrompt = `You are SentinelAI, an advanced AI assistant specialized in election security and misinformation detection for Indian elections.

CONTEXT: You work for Project Sentinel, monitoring the 2024 Lok Sabha elections across social media platforms like Twitter/X, Facebook, and Reddit.

KEY AREAS OF EXPERTISE:
- Indian election security (EVM tampering, booth capturing, voter fraud)
- Misinformation detection in Hindi and English
- Social media analysis (Twitter/X, WhatsApp, Facebook, Reddit)
- Campaign monitoring and threat assessment
- Communal tension analysis
- Political disinformation patterns in India

INSTRUCTIONS:
- Provide actionable insights for election security analysts
- Reference real Indian political context when relevant
- Use security/intelligence terminology
- Be concise but comprehensive
- Always maintain objectivity and professional tone

Format responses clearly with bullet points, numbered lists, or sections when appropriate.`

// greeting opens a fresh session.
const greeting = "🤖 **SentinelAI** ready for election security analysis!\n\n" +
	"I'm monitoring your active campaigns including the **2024 Lok Sabha Election Security** operation. Ask me about:\n\n" +
	"• 🚨 Threat analysis & misinformation detection\n" +
	"• 📊 Campaign performance metrics\n" +
	"• 🔍 Social media pattern recognition\n" +
	"• 🇮🇳 Indian election security insights\n\n" +
	"What would you like to analyze?"

// clearedGreeting replaces the transcript after a clear.
const clearedGreeting = "🤖 **Chat cleared!** SentinelAI ready for new election security analysis.\n\n" +
	"How can I assist with your analysis?"

// The three canned fallbacks keep the session usable when the upstream AI
// endpoint is unreachable. Each embeds a prefix of the failed query so the
// transcript still reads as a response to the question that was asked.

func credentialFallback(query string) string {
	return fmt.Sprintf("🔑 **API Key Error**: Please configure your AI API key as `AI_API_KEY` in the environment.\n\n"+
		"**Demo Response for %q:**\n\n"+
		"Based on our 2024 Lok Sabha Election Security Monitoring campaign, here's what I can tell you:\n\n"+
		"📊 **Current Threat Landscape:**\n"+
		"• EVM tampering claims spreading across UP, Maharashtra, West Bengal\n"+
		"• Coordinated bot networks amplifying \"election rigged\" narratives\n"+
		"• Deep fake videos of political leaders detected on social platforms\n\n"+
		"🎯 **Recommended Actions:**\n"+
		"• Increase monitoring of Hindi/English keywords: \"EVM hack\", \"booth capture\", \"voting fraud\"\n"+
		"• Deploy real-time fact-checking for viral election content\n\n"+
		"Would you like me to elaborate on any specific aspect of election security monitoring?", truncate(query, 50))
}

func quotaFallback(query string) string {
	return fmt.Sprintf("⚠️ **API Quota Exceeded**: The AI API quota has been reached.\n\n"+
		"**Demo Response for %q:**\n\n"+
		"I'm analyzing this through our Project Sentinel intelligence framework...\n\n"+
		"🔍 **Analysis Results:**\n"+
		"• **High Priority**: Monitor EVM-related misinformation in UP, Bihar\n"+
		"• **Medium Priority**: Track communal tension narratives in West Bengal\n\n"+
		"📈 **Trending Patterns:**\n"+
		"• Cross-platform coordination between X and WhatsApp\n"+
		"• AI-generated content detected in 30%% of flagged posts\n\n"+
		"Please upgrade your API plan or try again later for real-time analysis.", truncate(query, 50))
}

func connectivityFallback(query string) string {
	return fmt.Sprintf("🤖 **Connection Error**: Unable to reach the AI servers.\n\n"+
		"**Demo Analysis for %q:**\n\n"+
		"As SentinelAI, I'm processing this query through our election security lens...\n\n"+
		"🚨 **Key Insights:**\n"+
		"• Our 2024 Lok Sabha monitoring shows increased activity in swing states\n"+
		"• Pattern recognition suggests coordinated disinformation campaigns\n\n"+
		"🎯 **Next Steps:**\n"+
		"1. Deploy enhanced keyword monitoring for Hindi content\n"+
		"2. Increase human analyst verification for high-severity alerts\n"+
		"3. Coordinate with Election Commission for rapid response\n\n"+
		"*Note: This is a demo response. Please check your API configuration for real-time analysis.*", truncate(query, 50))
}

// truncate cuts on rune boundaries; queries arrive in Hindi as well as
// English.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
