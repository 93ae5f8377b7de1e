package chapters

// stopWords covers common function words, pronouns, and the filler and
// backchannel words that dominate conversational podcast audio. Tokens on
// this list never count as significant for lexical window similarity.
var stopWords = map[string]bool{
	"about": true, "after": true, "again": true, "against": true,
	"also": true, "always": true, "another": true, "anything": true,
	"around": true, "because": true, "been": true, "before": true,
	"being": true, "between": true, "both": true, "cause": true,
	"could": true, "does": true, "doing": true, "down": true,
	"each": true, "even": true, "ever": true, "every": true,
	"everything": true, "from": true, "getting": true, "goes": true,
	"going": true, "gonna": true, "gotta": true, "have": true,
	"having": true, "hers": true, "himself": true, "herself": true,
	"into": true, "just": true, "kind": true, "kinda": true,
	"know": true, "like": true, "little": true, "look": true,
	"lots": true, "make": true, "many": true, "maybe": true,
	"mean": true, "more": true, "most": true, "much": true,
	"myself": true, "never": true, "okay": true, "only": true,
	"other": true, "ours": true, "over": true, "pretty": true,
	"really": true, "right": true, "said": true, "same": true,
	"says": true, "should": true, "some": true, "something": true,
	"sort": true, "sorta": true, "stuff": true, "such": true,
	"sure": true, "take": true, "than": true, "that": true,
	"their": true, "theirs": true, "them": true, "then": true,
	"there": true, "these": true, "they": true, "thing": true,
	"things": true, "think": true, "this": true, "those": true,
	"through": true, "very": true, "want": true, "well": true,
	"went": true, "were": true, "what": true, "when": true,
	"where": true, "which": true, "while": true, "will": true,
	"with": true, "would": true, "yeah": true, "yourself": true,
	"your": true, "yours": true,
}
