// internal/platform/builtin.go
package platform

// builtinConfigs returns the adapters shipped with the pipeline. Selector
// lists are heuristic and expected to degrade as host sites change markup;
// order encodes preference, not correctness.
func builtinConfigs() []*Config {
	return []*Config{
		{
			ID:             "twitter",
			Name:           "Twitter/X",
			Domains:        []string{"twitter.com", "x.com"},
			CharacterLimit: 280,
			Selectors: Selectors{
				Post:        []string{`article[data-testid="tweet"]`, `[data-testid="tweet"]`, `article[role="article"]`},
				PostText:    []string{`[data-testid="tweetText"]`, `.tweet-text`},
				ReplyButton: []string{`[data-testid="reply"]`, `[aria-label*="Reply"]`},
				ReplyBox:    []string{`[data-testid="tweetTextarea_0"]`, `div[contenteditable="true"][role="textbox"]`},
				Author:      []string{`[data-testid="User-Name"] span`, `.tweet-author`},
				Username:    []string{`[data-testid="User-Name"]`, `.tweet-username`},
				Timestamp:   []string{`time`, `[datetime]`},
				ContentRoot: `main[role="main"]`,
				Engagement: EngagementSelectors{
					Likes:    []string{`[data-testid="like"]`, `[data-testid="unlike"]`},
					Shares:   []string{`[data-testid="retweet"]`, `[data-testid="unretweet"]`},
					Comments: []string{`[data-testid="reply"]`},
				},
				MediaCDNPattern: "pbs.twimg.com",
			},
			Features: Features{
				SupportsThreads:  true,
				SupportsHashtags: true,
				SupportsMentions: true,
				SupportsEmojis:   true,
				CryptoFriendly:   true,
				Tone:             ToneCasual,
				EmojiUsage:       EmojiHigh,
				HashtagStrategy:  HashtagTrending,
			},
		},
		{
			ID:             "linkedin",
			Name:           "LinkedIn",
			Domains:        []string{"linkedin.com"},
			CharacterLimit: 3000,
			Selectors: Selectors{
				Post:        []string{`.feed-shared-update-v2`, `.occludable-update`},
				PostText:    []string{`.feed-shared-text`, `.break-words`},
				ReplyButton: []string{`.comment-button`, `[aria-label*="Comment"]`},
				ReplyBox:    []string{`.ql-editor`, `.comments-comment-texteditor`},
				Author:      []string{`.feed-shared-actor__name`, `.update-components-actor__name`},
				Username:    []string{`.feed-shared-actor__description`, `.update-components-actor__description`},
				Timestamp:   []string{`.feed-shared-actor__sub-description time`, `time`},
				ContentRoot: `main.scaffold-layout__main`,
				Engagement: EngagementSelectors{
					Likes:    []string{`.reactions-react-button`, `.like-button`},
					Shares:   []string{`.share-button`, `.reshare-button`},
					Comments: []string{`.comment-button`},
				},
				MediaCDNPattern: "media.licdn.com",
			},
			Features: Features{
				SupportsHashtags: true,
				SupportsMentions: true,
				SupportsEmojis:   true,
				Tone:             ToneProfessional,
				EmojiUsage:       EmojiLow,
				HashtagStrategy:  HashtagNiche,
			},
		},
		{
			ID:             "discord",
			Name:           "Discord",
			Domains:        []string{"discord.com"},
			CharacterLimit: 2000,
			Selectors: Selectors{
				Post:        []string{`[id^="message-"]`, `li[class*="message"]`},
				PostText:    []string{`[class*="markup"]`, `[class*="messageContent"]`},
				ReplyButton: []string{`[class*="replyButton"]`, `[aria-label*="Reply"]`},
				ReplyBox:    []string{`[role="textbox"]`},
				Author:      []string{`[class*="username"]`, `[class*="headerText"]`},
				Username:    []string{`[class*="username"]`},
				Timestamp:   []string{`time`, `[class*="timestamp"]`},
				ContentRoot: `[data-list-id="chat-messages"]`,
				Engagement: EngagementSelectors{
					Likes:    []string{`[class*="reaction"]`},
					Comments: []string{`[class*="replyButton"]`},
				},
				MediaCDNPattern: "cdn.discordapp.com",
			},
			Features: Features{
				SupportsThreads:  true,
				SupportsMentions: true,
				SupportsEmojis:   true,
				CryptoFriendly:   true,
				Tone:             ToneCasual,
				EmojiUsage:       EmojiHigh,
				HashtagStrategy:  HashtagMinimal,
			},
		},
		{
			ID:             "telegram",
			Name:           "Telegram",
			Domains:        []string{"web.telegram.org"},
			CharacterLimit: 4096,
			Selectors: Selectors{
				Post:        []string{`.message`, `.Message`},
				PostText:    []string{`.text-content`, `.message-text`},
				ReplyButton: []string{`.reply-button`, `[title*="Reply"]`},
				ReplyBox:    []string{`#editable-message-text`, `.input-message-input`},
				Author:      []string{`.peer-title`, `.message-author`},
				Username:    []string{`.peer-title`},
				Timestamp:   []string{`.message-time`, `.time`},
				ContentRoot: `.messages-container`,
				Engagement: EngagementSelectors{
					Likes:    []string{`.reaction`, `.reactions`},
					Shares:   []string{`.forward-button`},
					Comments: []string{`.reply-button`},
				},
			},
			Features: Features{
				SupportsHashtags: true,
				SupportsMentions: true,
				SupportsEmojis:   true,
				CryptoFriendly:   true,
				Tone:             ToneCasual,
				EmojiUsage:       EmojiHigh,
				HashtagStrategy:  HashtagNiche,
			},
		},
	}
}
