package opcode

// Op is a logical opcode: a stable identifier of a protocol message.
type Op uint16

// Logical opcodes. Values are internal and never appear on the wire.
const (
	Invalid Op = iota
	CMsgPing
	CMsgAuthSession
	CMsgCharCreate
	CMsgCharEnum
	CMsgCharDelete
	CMsgPlayerLogin
	CMsgMoveStartForward
	CMsgMoveStartBackward
	CMsgMoveStop
	CMsgMoveStartStrafeLeft
	CMsgMoveStartStrafeRight
	CMsgMoveStopStrafe
	CMsgMoveJump
	CMsgMoveStartTurnLeft
	CMsgMoveStartTurnRight
	CMsgMoveStopTurn
	CMsgMoveSetFacing
	CMsgMoveFallLand
	CMsgMoveStartSwim
	CMsgMoveStopSwim
	CMsgMoveHeartbeat
	SMsgAuthChallenge
	SMsgAuthResponse
	SMsgCharCreate
	SMsgCharEnum
	SMsgCharDelete
	SMsgCharacterLoginFailed
	SMsgPong
	SMsgLoginVerifyWorld
	SMsgInitWorldStates
	SMsgLoginSettimespeed
	SMsgTutorialFlags
	SMsgInitializeFactions
	SMsgWardenData
	CMsgWardenData
	SMsgAccountDataTimes
	SMsgClientcacheVersion
	SMsgFeatureSystemStatus
	SMsgMotd
	SMsgNotification
	SMsgUpdateObject
	SMsgCompressedUpdateObject
	SMsgUnknown1f5
	SMsgMonsterMoveTransport
	SMsgSplineMoveSetWalkMode
	SMsgSplineMoveSetRunMode
	SMsgSplineMoveSetRunSpeed
	SMsgSplineMoveSetRunBackSpeed
	SMsgSplineMoveSetSwimSpeed
	SMsgDestroyObject
	CMsgMessagechat
	SMsgMessagechat
	CMsgWho
	SMsgWho
	CMsgRequestPlayedTime
	SMsgPlayedTime
	CMsgQueryTime
	SMsgQueryTimeResponse
	SMsgFriendStatus
	SMsgContactList
	CMsgAddFriend
	CMsgDelFriend
	CMsgSetContactNotes
	CMsgAddIgnore
	CMsgDelIgnore
	CMsgPlayerLogout
	CMsgLogoutRequest
	CMsgLogoutCancel
	SMsgLogoutResponse
	SMsgLogoutComplete
	CMsgStandStateChange
	CMsgShowingHelm
	CMsgShowingCloak
	CMsgTogglePvp
	CMsgGuildInvite
	CMsgGuildAccept
	CMsgGuildDeclineInvitation
	CMsgGuildInfo
	CMsgGuildGetRoster
	CMsgGuildPromoteMember
	CMsgGuildDemoteMember
	CMsgGuildLeave
	CMsgGuildMotd
	SMsgGuildInfo
	SMsgGuildRoster
	CMsgGuildQuery
	SMsgGuildQueryResponse
	SMsgGuildInvite
	CMsgGuildRemove
	CMsgGuildDisband
	CMsgGuildLeader
	CMsgGuildSetPublicNote
	CMsgGuildSetOfficerNote
	SMsgGuildEvent
	SMsgGuildCommandResult
	MsgRaidReadyCheck
	MsgRaidReadyCheckConfirm
	SMsgItemPushResult
	CMsgDuelAccepted
	CMsgDuelCancelled
	SMsgDuelRequested
	CMsgInitiateTrade
	MsgRandomRoll
	CMsgSetSelection
	CMsgNameQuery
	SMsgNameQueryResponse
	CMsgCreatureQuery
	SMsgCreatureQueryResponse
	CMsgGameobjectQuery
	SMsgGameobjectQueryResponse
	CMsgSetActiveMover
	CMsgBinderActivate
	SMsgLogXpgain
	SMsgMonsterMove
	SMsgCompressedMoves
	CMsgAttackswing
	CMsgAttackstop
	SMsgAttackstart
	SMsgAttackstop
	SMsgAttackerstateupdate
	SMsgAiReaction
	SMsgSpellnonmeleedamagelog
	SMsgPlaySpellVisual
	SMsgSpellheallog
	SMsgSpellenergizelog
	SMsgPeriodicauralog
	SMsgEnvironmentaldamagelog
	CMsgCastSpell
	CMsgCancelCast
	CMsgCancelAura
	SMsgCastFailed
	SMsgSpellStart
	SMsgSpellGo
	SMsgSpellFailure
	SMsgSpellCooldown
	SMsgCooldownEvent
	SMsgUpdateAuraDuration
	SMsgInitialSpells
	SMsgLearnedSpell
	SMsgSupercededSpell
	SMsgRemovedSpell
	SMsgSendUnlearnSpells
	SMsgSpellDelayed
	SMsgCancelAutoRepeat
	SMsgAuraUpdate
	SMsgAuraUpdateAll
	SMsgSetFlatSpellModifier
	SMsgSetPctSpellModifier
	SMsgTalentsInfo
	CMsgLearnTalent
	MsgTalentWipeConfirm
	CMsgGroupInvite
	SMsgGroupInvite
	CMsgGroupAccept
	CMsgGroupDecline
	SMsgGroupDecline
	CMsgGroupUninviteGuid
	SMsgGroupUninvite
	CMsgGroupSetLeader
	SMsgGroupSetLeader
	CMsgGroupDisband
	SMsgGroupList
	SMsgPartyCommandResult
	MsgRaidTargetUpdate
	CMsgRequestRaidInfo
	SMsgRaidInstanceInfo
	CMsgAutostoreLootItem
	CMsgLoot
	CMsgLootMoney
	CMsgLootRelease
	SMsgLootResponse
	SMsgLootReleaseResponse
	SMsgLootRemoved
	SMsgLootMoneyNotify
	SMsgLootClearMoney
	CMsgActivatetaxi
	CMsgGossipHello
	CMsgGossipSelectOption
	SMsgGossipMessage
	SMsgGossipComplete
	SMsgNpcTextUpdate
	CMsgGameobjectUse
	CMsgQuestgiverStatusQuery
	SMsgQuestgiverStatus
	SMsgQuestgiverStatusMultiple
	CMsgQuestgiverHello
	SMsgQuestgiverQuestList
	CMsgQuestgiverQueryQuest
	SMsgQuestgiverQuestDetails
	CMsgQuestgiverAcceptQuest
	CMsgQuestgiverCompleteQuest
	SMsgQuestgiverRequestItems
	CMsgQuestgiverRequestReward
	SMsgQuestgiverOfferReward
	CMsgQuestgiverChooseReward
	SMsgQuestgiverQuestInvalid
	SMsgQuestgiverQuestComplete
	CMsgQuestlogRemoveQuest
	SMsgQuestupdateAddKill
	SMsgQuestupdateAddItem
	SMsgQuestupdateComplete
	SMsgQuestForceRemove
	CMsgQuestQuery
	SMsgQuestQueryResponse
	SMsgQuestlogFull
	CMsgListInventory
	SMsgListInventory
	CMsgSellItem
	SMsgSellItem
	CMsgBuyItem
	CMsgBuybackItem
	SMsgBuyFailed
	CMsgTrainerList
	SMsgTrainerList
	CMsgTrainerBuySpell
	SMsgTrainerBuyFailed
	CMsgItemQuerySingle
	SMsgItemQuerySingleResponse
	CMsgUseItem
	CMsgAutoequipItem
	CMsgSwapItem
	CMsgSwapInvItem
	SMsgInventoryChangeFailure
	CMsgInspect
	SMsgInspectResults
	CMsgRepopRequest
	SMsgResurrectRequest
	CMsgResurrectResponse
	CMsgSpiritHealerActivate
	SMsgSpiritHealerConfirm
	SMsgResurrectCancel
	MsgMoveTeleportAck
	SMsgTransferPending
	SMsgNewWorld
	MsgMoveWorldportAck
	SMsgTransferAborted
	SMsgForceRunSpeedChange
	SMsgClientControlUpdate
	CMsgForceRunSpeedChangeAck
	CMsgCancelMountAura
	SMsgShowtaxinodes
	SMsgActivatetaxireply
	SMsgStandstateUpdate
	SMsgNewTaxiPath
	CMsgActivatetaxiexpress
	SMsgBattlefieldPortDenied
	SMsgRemovedFromPvpQueue
	SMsgTrainerBuySucceeded
	SMsgBindpointupdate
	SMsgSetProficiency
	SMsgActionButtons
	SMsgLevelupInfo
	CMsgTaxinodeStatusQuery
	SMsgTaxinodeStatus
	CMsgUpdateAccountData
	CMsgBattlefieldList
	SMsgBattlefieldList
	CMsgBattlefieldJoin
	CMsgBattlefieldStatus
	SMsgBattlefieldStatus
	CMsgBattlefieldPort
	CMsgBattlemasterHello
	MsgPvpLogData
	CMsgLeaveBattlefield
	SMsgGroupJoinedBattleground
	MsgBattlegroundPlayerPositions
	SMsgBattlegroundPlayerJoined
	SMsgBattlegroundPlayerLeft
	CMsgBattlemasterJoin
	SMsgJoinedBattlegroundQueue
	CMsgArenaTeamCreate
	SMsgArenaTeamCommandResult
	CMsgArenaTeamQuery
	SMsgArenaTeamQueryResponse
	CMsgArenaTeamRoster
	SMsgArenaTeamRoster
	CMsgArenaTeamInvite
	SMsgArenaTeamInvite
	CMsgArenaTeamAccept
	CMsgArenaTeamDecline
	CMsgArenaTeamLeave
	CMsgArenaTeamRemove
	CMsgArenaTeamDisband
	CMsgArenaTeamLeader
	SMsgArenaTeamEvent
	CMsgBattlemasterJoinArena
	SMsgArenaTeamStats
	SMsgArenaError
	MsgInspectArenaTeams
	SMsgWeather
	CMsgEmote
	SMsgEmote
	CMsgTextEmote
	SMsgTextEmote
	CMsgJoinChannel
	CMsgLeaveChannel
	SMsgChannelNotify
	CMsgChannelList
	SMsgChannelList
	SMsgInspectTalent
	SMsgShowMailbox
	CMsgGetMailList
	SMsgMailListResult
	CMsgSendMail
	SMsgSendMailResult
	CMsgMailTakeMoney
	CMsgMailTakeItem
	CMsgMailDelete
	CMsgMailMarkAsRead
	SMsgReceivedMail
	MsgQueryNextMailTime
	CMsgBankerActivate
	SMsgShowBank
	CMsgBuyBankSlot
	SMsgBuyBankSlotResult
	CMsgAutobankItem
	CMsgAutostoreBankItem
	CMsgGuildBankerActivate
	CMsgGuildBankQueryTab
	SMsgGuildBankList
	CMsgGuildBankSwapItems
	CMsgGuildBankBuyTab
	CMsgGuildBankUpdateTab
	CMsgGuildBankDepositMoney
	CMsgGuildBankWithdrawMoney
	MsgAuctionHello
	CMsgAuctionSellItem
	CMsgAuctionRemoveItem
	CMsgAuctionListItems
	CMsgAuctionListOwnerItems
	CMsgAuctionPlaceBid
	SMsgAuctionCommandResult
	SMsgAuctionListResult
	SMsgAuctionOwnerListResult
	SMsgAuctionBidderListResult
	SMsgAuctionOwnerNotification
	SMsgAuctionBidderNotification
	CMsgAuctionListBidderItems
	SMsgUnknown319

	numOps
)

// names holds the canonical protocol name of every logical opcode.
var names = [numOps]string{
	CMsgPing:                       "CMSG_PING",
	CMsgAuthSession:                "CMSG_AUTH_SESSION",
	CMsgCharCreate:                 "CMSG_CHAR_CREATE",
	CMsgCharEnum:                   "CMSG_CHAR_ENUM",
	CMsgCharDelete:                 "CMSG_CHAR_DELETE",
	CMsgPlayerLogin:                "CMSG_PLAYER_LOGIN",
	CMsgMoveStartForward:           "CMSG_MOVE_START_FORWARD",
	CMsgMoveStartBackward:          "CMSG_MOVE_START_BACKWARD",
	CMsgMoveStop:                   "CMSG_MOVE_STOP",
	CMsgMoveStartStrafeLeft:        "CMSG_MOVE_START_STRAFE_LEFT",
	CMsgMoveStartStrafeRight:       "CMSG_MOVE_START_STRAFE_RIGHT",
	CMsgMoveStopStrafe:             "CMSG_MOVE_STOP_STRAFE",
	CMsgMoveJump:                   "CMSG_MOVE_JUMP",
	CMsgMoveStartTurnLeft:          "CMSG_MOVE_START_TURN_LEFT",
	CMsgMoveStartTurnRight:         "CMSG_MOVE_START_TURN_RIGHT",
	CMsgMoveStopTurn:               "CMSG_MOVE_STOP_TURN",
	CMsgMoveSetFacing:              "CMSG_MOVE_SET_FACING",
	CMsgMoveFallLand:               "CMSG_MOVE_FALL_LAND",
	CMsgMoveStartSwim:              "CMSG_MOVE_START_SWIM",
	CMsgMoveStopSwim:               "CMSG_MOVE_STOP_SWIM",
	CMsgMoveHeartbeat:              "CMSG_MOVE_HEARTBEAT",
	SMsgAuthChallenge:              "SMSG_AUTH_CHALLENGE",
	SMsgAuthResponse:               "SMSG_AUTH_RESPONSE",
	SMsgCharCreate:                 "SMSG_CHAR_CREATE",
	SMsgCharEnum:                   "SMSG_CHAR_ENUM",
	SMsgCharDelete:                 "SMSG_CHAR_DELETE",
	SMsgCharacterLoginFailed:       "SMSG_CHARACTER_LOGIN_FAILED",
	SMsgPong:                       "SMSG_PONG",
	SMsgLoginVerifyWorld:           "SMSG_LOGIN_VERIFY_WORLD",
	SMsgInitWorldStates:            "SMSG_INIT_WORLD_STATES",
	SMsgLoginSettimespeed:          "SMSG_LOGIN_SETTIMESPEED",
	SMsgTutorialFlags:              "SMSG_TUTORIAL_FLAGS",
	SMsgInitializeFactions:         "SMSG_INITIALIZE_FACTIONS",
	SMsgWardenData:                 "SMSG_WARDEN_DATA",
	CMsgWardenData:                 "CMSG_WARDEN_DATA",
	SMsgAccountDataTimes:           "SMSG_ACCOUNT_DATA_TIMES",
	SMsgClientcacheVersion:         "SMSG_CLIENTCACHE_VERSION",
	SMsgFeatureSystemStatus:        "SMSG_FEATURE_SYSTEM_STATUS",
	SMsgMotd:                       "SMSG_MOTD",
	SMsgNotification:               "SMSG_NOTIFICATION",
	SMsgUpdateObject:               "SMSG_UPDATE_OBJECT",
	SMsgCompressedUpdateObject:     "SMSG_COMPRESSED_UPDATE_OBJECT",
	SMsgUnknown1f5:                 "SMSG_UNKNOWN_1F5",
	SMsgMonsterMoveTransport:       "SMSG_MONSTER_MOVE_TRANSPORT",
	SMsgSplineMoveSetWalkMode:      "SMSG_SPLINE_MOVE_SET_WALK_MODE",
	SMsgSplineMoveSetRunMode:       "SMSG_SPLINE_MOVE_SET_RUN_MODE",
	SMsgSplineMoveSetRunSpeed:      "SMSG_SPLINE_MOVE_SET_RUN_SPEED",
	SMsgSplineMoveSetRunBackSpeed:  "SMSG_SPLINE_MOVE_SET_RUN_BACK_SPEED",
	SMsgSplineMoveSetSwimSpeed:     "SMSG_SPLINE_MOVE_SET_SWIM_SPEED",
	SMsgDestroyObject:              "SMSG_DESTROY_OBJECT",
	CMsgMessagechat:                "CMSG_MESSAGECHAT",
	SMsgMessagechat:                "SMSG_MESSAGECHAT",
	CMsgWho:                        "CMSG_WHO",
	SMsgWho:                        "SMSG_WHO",
	CMsgRequestPlayedTime:          "CMSG_REQUEST_PLAYED_TIME",
	SMsgPlayedTime:                 "SMSG_PLAYED_TIME",
	CMsgQueryTime:                  "CMSG_QUERY_TIME",
	SMsgQueryTimeResponse:          "SMSG_QUERY_TIME_RESPONSE",
	SMsgFriendStatus:               "SMSG_FRIEND_STATUS",
	SMsgContactList:                "SMSG_CONTACT_LIST",
	CMsgAddFriend:                  "CMSG_ADD_FRIEND",
	CMsgDelFriend:                  "CMSG_DEL_FRIEND",
	CMsgSetContactNotes:            "CMSG_SET_CONTACT_NOTES",
	CMsgAddIgnore:                  "CMSG_ADD_IGNORE",
	CMsgDelIgnore:                  "CMSG_DEL_IGNORE",
	CMsgPlayerLogout:               "CMSG_PLAYER_LOGOUT",
	CMsgLogoutRequest:              "CMSG_LOGOUT_REQUEST",
	CMsgLogoutCancel:               "CMSG_LOGOUT_CANCEL",
	SMsgLogoutResponse:             "SMSG_LOGOUT_RESPONSE",
	SMsgLogoutComplete:             "SMSG_LOGOUT_COMPLETE",
	CMsgStandStateChange:           "CMSG_STAND_STATE_CHANGE",
	CMsgShowingHelm:                "CMSG_SHOWING_HELM",
	CMsgShowingCloak:               "CMSG_SHOWING_CLOAK",
	CMsgTogglePvp:                  "CMSG_TOGGLE_PVP",
	CMsgGuildInvite:                "CMSG_GUILD_INVITE",
	CMsgGuildAccept:                "CMSG_GUILD_ACCEPT",
	CMsgGuildDeclineInvitation:     "CMSG_GUILD_DECLINE_INVITATION",
	CMsgGuildInfo:                  "CMSG_GUILD_INFO",
	CMsgGuildGetRoster:             "CMSG_GUILD_GET_ROSTER",
	CMsgGuildPromoteMember:         "CMSG_GUILD_PROMOTE_MEMBER",
	CMsgGuildDemoteMember:          "CMSG_GUILD_DEMOTE_MEMBER",
	CMsgGuildLeave:                 "CMSG_GUILD_LEAVE",
	CMsgGuildMotd:                  "CMSG_GUILD_MOTD",
	SMsgGuildInfo:                  "SMSG_GUILD_INFO",
	SMsgGuildRoster:                "SMSG_GUILD_ROSTER",
	CMsgGuildQuery:                 "CMSG_GUILD_QUERY",
	SMsgGuildQueryResponse:         "SMSG_GUILD_QUERY_RESPONSE",
	SMsgGuildInvite:                "SMSG_GUILD_INVITE",
	CMsgGuildRemove:                "CMSG_GUILD_REMOVE",
	CMsgGuildDisband:               "CMSG_GUILD_DISBAND",
	CMsgGuildLeader:                "CMSG_GUILD_LEADER",
	CMsgGuildSetPublicNote:         "CMSG_GUILD_SET_PUBLIC_NOTE",
	CMsgGuildSetOfficerNote:        "CMSG_GUILD_SET_OFFICER_NOTE",
	SMsgGuildEvent:                 "SMSG_GUILD_EVENT",
	SMsgGuildCommandResult:         "SMSG_GUILD_COMMAND_RESULT",
	MsgRaidReadyCheck:              "MSG_RAID_READY_CHECK",
	MsgRaidReadyCheckConfirm:       "MSG_RAID_READY_CHECK_CONFIRM",
	SMsgItemPushResult:             "SMSG_ITEM_PUSH_RESULT",
	CMsgDuelAccepted:               "CMSG_DUEL_ACCEPTED",
	CMsgDuelCancelled:              "CMSG_DUEL_CANCELLED",
	SMsgDuelRequested:              "SMSG_DUEL_REQUESTED",
	CMsgInitiateTrade:              "CMSG_INITIATE_TRADE",
	MsgRandomRoll:                  "MSG_RANDOM_ROLL",
	CMsgSetSelection:               "CMSG_SET_SELECTION",
	CMsgNameQuery:                  "CMSG_NAME_QUERY",
	SMsgNameQueryResponse:          "SMSG_NAME_QUERY_RESPONSE",
	CMsgCreatureQuery:              "CMSG_CREATURE_QUERY",
	SMsgCreatureQueryResponse:      "SMSG_CREATURE_QUERY_RESPONSE",
	CMsgGameobjectQuery:            "CMSG_GAMEOBJECT_QUERY",
	SMsgGameobjectQueryResponse:    "SMSG_GAMEOBJECT_QUERY_RESPONSE",
	CMsgSetActiveMover:             "CMSG_SET_ACTIVE_MOVER",
	CMsgBinderActivate:             "CMSG_BINDER_ACTIVATE",
	SMsgLogXpgain:                  "SMSG_LOG_XPGAIN",
	SMsgMonsterMove:                "SMSG_MONSTER_MOVE",
	SMsgCompressedMoves:            "SMSG_COMPRESSED_MOVES",
	CMsgAttackswing:                "CMSG_ATTACKSWING",
	CMsgAttackstop:                 "CMSG_ATTACKSTOP",
	SMsgAttackstart:                "SMSG_ATTACKSTART",
	SMsgAttackstop:                 "SMSG_ATTACKSTOP",
	SMsgAttackerstateupdate:        "SMSG_ATTACKERSTATEUPDATE",
	SMsgAiReaction:                 "SMSG_AI_REACTION",
	SMsgSpellnonmeleedamagelog:     "SMSG_SPELLNONMELEEDAMAGELOG",
	SMsgPlaySpellVisual:            "SMSG_PLAY_SPELL_VISUAL",
	SMsgSpellheallog:               "SMSG_SPELLHEALLOG",
	SMsgSpellenergizelog:           "SMSG_SPELLENERGIZELOG",
	SMsgPeriodicauralog:            "SMSG_PERIODICAURALOG",
	SMsgEnvironmentaldamagelog:     "SMSG_ENVIRONMENTALDAMAGELOG",
	CMsgCastSpell:                  "CMSG_CAST_SPELL",
	CMsgCancelCast:                 "CMSG_CANCEL_CAST",
	CMsgCancelAura:                 "CMSG_CANCEL_AURA",
	SMsgCastFailed:                 "SMSG_CAST_FAILED",
	SMsgSpellStart:                 "SMSG_SPELL_START",
	SMsgSpellGo:                    "SMSG_SPELL_GO",
	SMsgSpellFailure:               "SMSG_SPELL_FAILURE",
	SMsgSpellCooldown:              "SMSG_SPELL_COOLDOWN",
	SMsgCooldownEvent:              "SMSG_COOLDOWN_EVENT",
	SMsgUpdateAuraDuration:         "SMSG_UPDATE_AURA_DURATION",
	SMsgInitialSpells:              "SMSG_INITIAL_SPELLS",
	SMsgLearnedSpell:               "SMSG_LEARNED_SPELL",
	SMsgSupercededSpell:            "SMSG_SUPERCEDED_SPELL",
	SMsgRemovedSpell:               "SMSG_REMOVED_SPELL",
	SMsgSendUnlearnSpells:          "SMSG_SEND_UNLEARN_SPELLS",
	SMsgSpellDelayed:               "SMSG_SPELL_DELAYED",
	SMsgCancelAutoRepeat:           "SMSG_CANCEL_AUTO_REPEAT",
	SMsgAuraUpdate:                 "SMSG_AURA_UPDATE",
	SMsgAuraUpdateAll:              "SMSG_AURA_UPDATE_ALL",
	SMsgSetFlatSpellModifier:       "SMSG_SET_FLAT_SPELL_MODIFIER",
	SMsgSetPctSpellModifier:        "SMSG_SET_PCT_SPELL_MODIFIER",
	SMsgTalentsInfo:                "SMSG_TALENTS_INFO",
	CMsgLearnTalent:                "CMSG_LEARN_TALENT",
	MsgTalentWipeConfirm:           "MSG_TALENT_WIPE_CONFIRM",
	CMsgGroupInvite:                "CMSG_GROUP_INVITE",
	SMsgGroupInvite:                "SMSG_GROUP_INVITE",
	CMsgGroupAccept:                "CMSG_GROUP_ACCEPT",
	CMsgGroupDecline:               "CMSG_GROUP_DECLINE",
	SMsgGroupDecline:               "SMSG_GROUP_DECLINE",
	CMsgGroupUninviteGuid:          "CMSG_GROUP_UNINVITE_GUID",
	SMsgGroupUninvite:              "SMSG_GROUP_UNINVITE",
	CMsgGroupSetLeader:             "CMSG_GROUP_SET_LEADER",
	SMsgGroupSetLeader:             "SMSG_GROUP_SET_LEADER",
	CMsgGroupDisband:               "CMSG_GROUP_DISBAND",
	SMsgGroupList:                  "SMSG_GROUP_LIST",
	SMsgPartyCommandResult:         "SMSG_PARTY_COMMAND_RESULT",
	MsgRaidTargetUpdate:            "MSG_RAID_TARGET_UPDATE",
	CMsgRequestRaidInfo:            "CMSG_REQUEST_RAID_INFO",
	SMsgRaidInstanceInfo:           "SMSG_RAID_INSTANCE_INFO",
	CMsgAutostoreLootItem:          "CMSG_AUTOSTORE_LOOT_ITEM",
	CMsgLoot:                       "CMSG_LOOT",
	CMsgLootMoney:                  "CMSG_LOOT_MONEY",
	CMsgLootRelease:                "CMSG_LOOT_RELEASE",
	SMsgLootResponse:               "SMSG_LOOT_RESPONSE",
	SMsgLootReleaseResponse:        "SMSG_LOOT_RELEASE_RESPONSE",
	SMsgLootRemoved:                "SMSG_LOOT_REMOVED",
	SMsgLootMoneyNotify:            "SMSG_LOOT_MONEY_NOTIFY",
	SMsgLootClearMoney:             "SMSG_LOOT_CLEAR_MONEY",
	CMsgActivatetaxi:               "CMSG_ACTIVATETAXI",
	CMsgGossipHello:                "CMSG_GOSSIP_HELLO",
	CMsgGossipSelectOption:         "CMSG_GOSSIP_SELECT_OPTION",
	SMsgGossipMessage:              "SMSG_GOSSIP_MESSAGE",
	SMsgGossipComplete:             "SMSG_GOSSIP_COMPLETE",
	SMsgNpcTextUpdate:              "SMSG_NPC_TEXT_UPDATE",
	CMsgGameobjectUse:              "CMSG_GAMEOBJECT_USE",
	CMsgQuestgiverStatusQuery:      "CMSG_QUESTGIVER_STATUS_QUERY",
	SMsgQuestgiverStatus:           "SMSG_QUESTGIVER_STATUS",
	SMsgQuestgiverStatusMultiple:   "SMSG_QUESTGIVER_STATUS_MULTIPLE",
	CMsgQuestgiverHello:            "CMSG_QUESTGIVER_HELLO",
	SMsgQuestgiverQuestList:        "SMSG_QUESTGIVER_QUEST_LIST",
	CMsgQuestgiverQueryQuest:       "CMSG_QUESTGIVER_QUERY_QUEST",
	SMsgQuestgiverQuestDetails:     "SMSG_QUESTGIVER_QUEST_DETAILS",
	CMsgQuestgiverAcceptQuest:      "CMSG_QUESTGIVER_ACCEPT_QUEST",
	CMsgQuestgiverCompleteQuest:    "CMSG_QUESTGIVER_COMPLETE_QUEST",
	SMsgQuestgiverRequestItems:     "SMSG_QUESTGIVER_REQUEST_ITEMS",
	CMsgQuestgiverRequestReward:    "CMSG_QUESTGIVER_REQUEST_REWARD",
	SMsgQuestgiverOfferReward:      "SMSG_QUESTGIVER_OFFER_REWARD",
	CMsgQuestgiverChooseReward:     "CMSG_QUESTGIVER_CHOOSE_REWARD",
	SMsgQuestgiverQuestInvalid:     "SMSG_QUESTGIVER_QUEST_INVALID",
	SMsgQuestgiverQuestComplete:    "SMSG_QUESTGIVER_QUEST_COMPLETE",
	CMsgQuestlogRemoveQuest:        "CMSG_QUESTLOG_REMOVE_QUEST",
	SMsgQuestupdateAddKill:         "SMSG_QUESTUPDATE_ADD_KILL",
	SMsgQuestupdateAddItem:         "SMSG_QUESTUPDATE_ADD_ITEM",
	SMsgQuestupdateComplete:        "SMSG_QUESTUPDATE_COMPLETE",
	SMsgQuestForceRemove:           "SMSG_QUEST_FORCE_REMOVE",
	CMsgQuestQuery:                 "CMSG_QUEST_QUERY",
	SMsgQuestQueryResponse:         "SMSG_QUEST_QUERY_RESPONSE",
	SMsgQuestlogFull:               "SMSG_QUESTLOG_FULL",
	CMsgListInventory:              "CMSG_LIST_INVENTORY",
	SMsgListInventory:              "SMSG_LIST_INVENTORY",
	CMsgSellItem:                   "CMSG_SELL_ITEM",
	SMsgSellItem:                   "SMSG_SELL_ITEM",
	CMsgBuyItem:                    "CMSG_BUY_ITEM",
	CMsgBuybackItem:                "CMSG_BUYBACK_ITEM",
	SMsgBuyFailed:                  "SMSG_BUY_FAILED",
	CMsgTrainerList:                "CMSG_TRAINER_LIST",
	SMsgTrainerList:                "SMSG_TRAINER_LIST",
	CMsgTrainerBuySpell:            "CMSG_TRAINER_BUY_SPELL",
	SMsgTrainerBuyFailed:           "SMSG_TRAINER_BUY_FAILED",
	CMsgItemQuerySingle:            "CMSG_ITEM_QUERY_SINGLE",
	SMsgItemQuerySingleResponse:    "SMSG_ITEM_QUERY_SINGLE_RESPONSE",
	CMsgUseItem:                    "CMSG_USE_ITEM",
	CMsgAutoequipItem:              "CMSG_AUTOEQUIP_ITEM",
	CMsgSwapItem:                   "CMSG_SWAP_ITEM",
	CMsgSwapInvItem:                "CMSG_SWAP_INV_ITEM",
	SMsgInventoryChangeFailure:     "SMSG_INVENTORY_CHANGE_FAILURE",
	CMsgInspect:                    "CMSG_INSPECT",
	SMsgInspectResults:             "SMSG_INSPECT_RESULTS",
	CMsgRepopRequest:               "CMSG_REPOP_REQUEST",
	SMsgResurrectRequest:           "SMSG_RESURRECT_REQUEST",
	CMsgResurrectResponse:          "CMSG_RESURRECT_RESPONSE",
	CMsgSpiritHealerActivate:       "CMSG_SPIRIT_HEALER_ACTIVATE",
	SMsgSpiritHealerConfirm:        "SMSG_SPIRIT_HEALER_CONFIRM",
	SMsgResurrectCancel:            "SMSG_RESURRECT_CANCEL",
	MsgMoveTeleportAck:             "MSG_MOVE_TELEPORT_ACK",
	SMsgTransferPending:            "SMSG_TRANSFER_PENDING",
	SMsgNewWorld:                   "SMSG_NEW_WORLD",
	MsgMoveWorldportAck:            "MSG_MOVE_WORLDPORT_ACK",
	SMsgTransferAborted:            "SMSG_TRANSFER_ABORTED",
	SMsgForceRunSpeedChange:        "SMSG_FORCE_RUN_SPEED_CHANGE",
	SMsgClientControlUpdate:        "SMSG_CLIENT_CONTROL_UPDATE",
	CMsgForceRunSpeedChangeAck:     "CMSG_FORCE_RUN_SPEED_CHANGE_ACK",
	CMsgCancelMountAura:            "CMSG_CANCEL_MOUNT_AURA",
	SMsgShowtaxinodes:              "SMSG_SHOWTAXINODES",
	SMsgActivatetaxireply:          "SMSG_ACTIVATETAXIREPLY",
	SMsgStandstateUpdate:           "SMSG_STANDSTATE_UPDATE",
	SMsgNewTaxiPath:                "SMSG_NEW_TAXI_PATH",
	CMsgActivatetaxiexpress:        "CMSG_ACTIVATETAXIEXPRESS",
	SMsgBattlefieldPortDenied:      "SMSG_BATTLEFIELD_PORT_DENIED",
	SMsgRemovedFromPvpQueue:        "SMSG_REMOVED_FROM_PVP_QUEUE",
	SMsgTrainerBuySucceeded:        "SMSG_TRAINER_BUY_SUCCEEDED",
	SMsgBindpointupdate:            "SMSG_BINDPOINTUPDATE",
	SMsgSetProficiency:             "SMSG_SET_PROFICIENCY",
	SMsgActionButtons:              "SMSG_ACTION_BUTTONS",
	SMsgLevelupInfo:                "SMSG_LEVELUP_INFO",
	CMsgTaxinodeStatusQuery:        "CMSG_TAXINODE_STATUS_QUERY",
	SMsgTaxinodeStatus:             "SMSG_TAXINODE_STATUS",
	CMsgUpdateAccountData:          "CMSG_UPDATE_ACCOUNT_DATA",
	CMsgBattlefieldList:            "CMSG_BATTLEFIELD_LIST",
	SMsgBattlefieldList:            "SMSG_BATTLEFIELD_LIST",
	CMsgBattlefieldJoin:            "CMSG_BATTLEFIELD_JOIN",
	CMsgBattlefieldStatus:          "CMSG_BATTLEFIELD_STATUS",
	SMsgBattlefieldStatus:          "SMSG_BATTLEFIELD_STATUS",
	CMsgBattlefieldPort:            "CMSG_BATTLEFIELD_PORT",
	CMsgBattlemasterHello:          "CMSG_BATTLEMASTER_HELLO",
	MsgPvpLogData:                  "MSG_PVP_LOG_DATA",
	CMsgLeaveBattlefield:           "CMSG_LEAVE_BATTLEFIELD",
	SMsgGroupJoinedBattleground:    "SMSG_GROUP_JOINED_BATTLEGROUND",
	MsgBattlegroundPlayerPositions: "MSG_BATTLEGROUND_PLAYER_POSITIONS",
	SMsgBattlegroundPlayerJoined:   "SMSG_BATTLEGROUND_PLAYER_JOINED",
	SMsgBattlegroundPlayerLeft:     "SMSG_BATTLEGROUND_PLAYER_LEFT",
	CMsgBattlemasterJoin:           "CMSG_BATTLEMASTER_JOIN",
	SMsgJoinedBattlegroundQueue:    "SMSG_JOINED_BATTLEGROUND_QUEUE",
	CMsgArenaTeamCreate:            "CMSG_ARENA_TEAM_CREATE",
	SMsgArenaTeamCommandResult:     "SMSG_ARENA_TEAM_COMMAND_RESULT",
	CMsgArenaTeamQuery:             "CMSG_ARENA_TEAM_QUERY",
	SMsgArenaTeamQueryResponse:     "SMSG_ARENA_TEAM_QUERY_RESPONSE",
	CMsgArenaTeamRoster:            "CMSG_ARENA_TEAM_ROSTER",
	SMsgArenaTeamRoster:            "SMSG_ARENA_TEAM_ROSTER",
	CMsgArenaTeamInvite:            "CMSG_ARENA_TEAM_INVITE",
	SMsgArenaTeamInvite:            "SMSG_ARENA_TEAM_INVITE",
	CMsgArenaTeamAccept:            "CMSG_ARENA_TEAM_ACCEPT",
	CMsgArenaTeamDecline:           "CMSG_ARENA_TEAM_DECLINE",
	CMsgArenaTeamLeave:             "CMSG_ARENA_TEAM_LEAVE",
	CMsgArenaTeamRemove:            "CMSG_ARENA_TEAM_REMOVE",
	CMsgArenaTeamDisband:           "CMSG_ARENA_TEAM_DISBAND",
	CMsgArenaTeamLeader:            "CMSG_ARENA_TEAM_LEADER",
	SMsgArenaTeamEvent:             "SMSG_ARENA_TEAM_EVENT",
	CMsgBattlemasterJoinArena:      "CMSG_BATTLEMASTER_JOIN_ARENA",
	SMsgArenaTeamStats:             "SMSG_ARENA_TEAM_STATS",
	SMsgArenaError:                 "SMSG_ARENA_ERROR",
	MsgInspectArenaTeams:           "MSG_INSPECT_ARENA_TEAMS",
	SMsgWeather:                    "SMSG_WEATHER",
	CMsgEmote:                      "CMSG_EMOTE",
	SMsgEmote:                      "SMSG_EMOTE",
	CMsgTextEmote:                  "CMSG_TEXT_EMOTE",
	SMsgTextEmote:                  "SMSG_TEXT_EMOTE",
	CMsgJoinChannel:                "CMSG_JOIN_CHANNEL",
	CMsgLeaveChannel:               "CMSG_LEAVE_CHANNEL",
	SMsgChannelNotify:              "SMSG_CHANNEL_NOTIFY",
	CMsgChannelList:                "CMSG_CHANNEL_LIST",
	SMsgChannelList:                "SMSG_CHANNEL_LIST",
	SMsgInspectTalent:              "SMSG_INSPECT_TALENT",
	SMsgShowMailbox:                "SMSG_SHOW_MAILBOX",
	CMsgGetMailList:                "CMSG_GET_MAIL_LIST",
	SMsgMailListResult:             "SMSG_MAIL_LIST_RESULT",
	CMsgSendMail:                   "CMSG_SEND_MAIL",
	SMsgSendMailResult:             "SMSG_SEND_MAIL_RESULT",
	CMsgMailTakeMoney:              "CMSG_MAIL_TAKE_MONEY",
	CMsgMailTakeItem:               "CMSG_MAIL_TAKE_ITEM",
	CMsgMailDelete:                 "CMSG_MAIL_DELETE",
	CMsgMailMarkAsRead:             "CMSG_MAIL_MARK_AS_READ",
	SMsgReceivedMail:               "SMSG_RECEIVED_MAIL",
	MsgQueryNextMailTime:           "MSG_QUERY_NEXT_MAIL_TIME",
	CMsgBankerActivate:             "CMSG_BANKER_ACTIVATE",
	SMsgShowBank:                   "SMSG_SHOW_BANK",
	CMsgBuyBankSlot:                "CMSG_BUY_BANK_SLOT",
	SMsgBuyBankSlotResult:          "SMSG_BUY_BANK_SLOT_RESULT",
	CMsgAutobankItem:               "CMSG_AUTOBANK_ITEM",
	CMsgAutostoreBankItem:          "CMSG_AUTOSTORE_BANK_ITEM",
	CMsgGuildBankerActivate:        "CMSG_GUILD_BANKER_ACTIVATE",
	CMsgGuildBankQueryTab:          "CMSG_GUILD_BANK_QUERY_TAB",
	SMsgGuildBankList:              "SMSG_GUILD_BANK_LIST",
	CMsgGuildBankSwapItems:         "CMSG_GUILD_BANK_SWAP_ITEMS",
	CMsgGuildBankBuyTab:            "CMSG_GUILD_BANK_BUY_TAB",
	CMsgGuildBankUpdateTab:         "CMSG_GUILD_BANK_UPDATE_TAB",
	CMsgGuildBankDepositMoney:      "CMSG_GUILD_BANK_DEPOSIT_MONEY",
	CMsgGuildBankWithdrawMoney:     "CMSG_GUILD_BANK_WITHDRAW_MONEY",
	MsgAuctionHello:                "MSG_AUCTION_HELLO",
	CMsgAuctionSellItem:            "CMSG_AUCTION_SELL_ITEM",
	CMsgAuctionRemoveItem:          "CMSG_AUCTION_REMOVE_ITEM",
	CMsgAuctionListItems:           "CMSG_AUCTION_LIST_ITEMS",
	CMsgAuctionListOwnerItems:      "CMSG_AUCTION_LIST_OWNER_ITEMS",
	CMsgAuctionPlaceBid:            "CMSG_AUCTION_PLACE_BID",
	SMsgAuctionCommandResult:       "SMSG_AUCTION_COMMAND_RESULT",
	SMsgAuctionListResult:          "SMSG_AUCTION_LIST_RESULT",
	SMsgAuctionOwnerListResult:     "SMSG_AUCTION_OWNER_LIST_RESULT",
	SMsgAuctionBidderListResult:    "SMSG_AUCTION_BIDDER_LIST_RESULT",
	SMsgAuctionOwnerNotification:   "SMSG_AUCTION_OWNER_NOTIFICATION",
	SMsgAuctionBidderNotification:  "SMSG_AUCTION_BIDDER_NOTIFICATION",
	CMsgAuctionListBidderItems:     "CMSG_AUCTION_LIST_BIDDER_ITEMS",
	SMsgUnknown319:                 "SMSG_UNKNOWN_319",
}
