package prompt

import "strings"

// languagePack is the compile-time instruction table for one response
// language. Unknown codes fall back to the English pack content while the
// requested code is still echoed in the directives.
type languagePack struct {
	Code     string
	Name     string
	General  string
	Image    string
	Document string
	Fallback string
	Greeting []string
}

var languages = map[string]languagePack{
	"en": {
		Code:     "en",
		Name:     "English",
		General:  "Answer naturally and completely in English.",
		Image:    "The user is asking about an image. Describe what an uploaded image likely contains based on its filename and metadata, and state clearly that you cannot see pixel content.",
		Document: "The user is asking about a document. Base your answer on the uploaded document text provided above and cite the filename when you use it.",
		Fallback: "I'm sorry, I can't process your request right now. Please try again later.",
		Greeting: []string{"hello", "hey", "hi"},
	},
	"es": {
		Code:     "es",
		Name:     "Spanish",
		General:  "Responde de forma natural y completa en español.",
		Image:    "El usuario pregunta por una imagen. Describe lo que probablemente contiene basándote en su nombre y metadatos, y aclara que no puedes ver el contenido de los píxeles.",
		Document: "El usuario pregunta por un documento. Basa tu respuesta en el texto del documento subido y cita el nombre del archivo cuando lo uses.",
		Fallback: "Lo siento, no puedo procesar tu solicitud en este momento. Inténtalo de nuevo más tarde.",
		Greeting: []string{"hola", "buenos", "buenas"},
	},
	"fr": {
		Code:     "fr",
		Name:     "French",
		General:  "Réponds naturellement et complètement en français.",
		Image:    "L'utilisateur pose une question sur une image. Décris son contenu probable à partir du nom de fichier et des métadonnées, et précise que tu ne vois pas les pixels.",
		Document: "L'utilisateur pose une question sur un document. Appuie ta réponse sur le texte du document fourni ci-dessus et cite le nom du fichier.",
		Fallback: "Désolé, je ne peux pas traiter votre demande pour le moment. Veuillez réessayer plus tard.",
		Greeting: []string{"bonjour", "salut", "bonsoir"},
	},
	"de": {
		Code:     "de",
		Name:     "German",
		General:  "Antworte natürlich und vollständig auf Deutsch.",
		Image:    "Der Nutzer fragt nach einem Bild. Beschreibe den wahrscheinlichen Inhalt anhand von Dateiname und Metadaten und stelle klar, dass du keine Pixelinhalte sehen kannst.",
		Document: "Der Nutzer fragt nach einem Dokument. Stütze deine Antwort auf den oben bereitgestellten Dokumenttext und nenne den Dateinamen.",
		Fallback: "Entschuldigung, ich kann Ihre Anfrage gerade nicht bearbeiten. Bitte versuchen Sie es später erneut.",
		Greeting: []string{"hallo", "guten", "servus"},
	},
	"pt": {
		Code:     "pt",
		Name:     "Portuguese",
		General:  "Responda de forma natural e completa em português.",
		Image:    "O usuário pergunta sobre uma imagem. Descreva o conteúdo provável com base no nome do arquivo e nos metadados, e deixe claro que você não vê o conteúdo dos pixels.",
		Document: "O usuário pergunta sobre um documento. Baseie sua resposta no texto do documento enviado acima e cite o nome do arquivo.",
		Fallback: "Desculpe, não consigo processar sua solicitação no momento. Tente novamente mais tarde.",
		Greeting: []string{"olá", "ola", "oi"},
	},
	"hi": {
		Code:     "hi",
		Name:     "Hindi",
		General:  "हिंदी में स्वाभाविक और पूर्ण उत्तर दें।",
		Image:    "उपयोगकर्ता एक छवि के बारे में पूछ रहा है। फ़ाइल नाम और मेटाडेटा के आधार पर संभावित सामग्री बताएं, और स्पष्ट करें कि आप पिक्सेल सामग्री नहीं देख सकते।",
		Document: "उपयोगकर्ता एक दस्तावेज़ के बारे में पूछ रहा है। ऊपर दिए गए दस्तावेज़ पाठ के आधार पर उत्तर दें और फ़ाइल नाम का उल्लेख करें।",
		Fallback: "क्षमा करें, मैं अभी आपका अनुरोध संसाधित नहीं कर सकता। कृपया बाद में पुनः प्रयास करें।",
		Greeting: []string{"namaste", "नमस्ते", "namaskar"},
	},
}

const defaultLanguage = "en"

// packFor returns the pack for the code, falling back to English content.
// The bool reports whether the code was actually supported.
func packFor(code string) (languagePack, bool) {
	if pack, ok := languages[strings.ToLower(code)]; ok {
		return pack, true
	}
	return languages[defaultLanguage], false
}

// FallbackText is the canned degraded answer for the language.
func FallbackText(code string) string {
	pack, _ := packFor(code)
	return pack.Fallback
}

// GreetingWords returns every supported language's greeting keywords.
func GreetingWords() []string {
	var words []string
	for _, code := range supportedCodes {
		words = append(words, languages[code].Greeting...)
	}
	return words
}

// supportedCodes fixes the enumeration order used in prompts.
var supportedCodes = []string{"en", "es", "fr", "de", "pt", "hi"}

func supportedEnumeration() string {
	parts := make([]string, 0, len(supportedCodes))
	for _, code := range supportedCodes {
		parts = append(parts, languages[code].Name+" ("+code+")")
	}
	return strings.Join(parts, ", ")
}
